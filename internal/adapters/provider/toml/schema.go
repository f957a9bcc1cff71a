package toml

import (
	"fmt"

	"github.com/cloudnav/accounttree/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Status  string         `toml:"status"`
	Session sessionSchema  `toml:"session"`
	Filters []filterSchema `toml:"filters"`
}

type sessionSchema struct {
	TenantID      string `toml:"tenant_id"`
	UserID        string `toml:"user_id"`
	Environment   string `toml:"environment"`
	CredentialRef string `toml:"credential_ref,omitempty"`
}

type filterSchema struct {
	SubscriptionPath string `toml:"subscription_path"`
	DisplayName      string `toml:"display_name"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.Status == "" {
		s.Status = string(domain.StatusLoggedOut)
	}
}

func (s fileSchema) validate() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported provider state schema version %d (current %d)", s.Version, currentSchemaVersion)
	}
	if !domain.Status(s.Status).Valid() {
		return fmt.Errorf("unknown provider status %q", s.Status)
	}

	return nil
}
