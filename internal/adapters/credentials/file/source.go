package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cloudnav/accounttree/internal/domain"
	"github.com/cloudnav/accounttree/internal/ports"
)

const (
	sourceDirMode  = 0o700
	secretFileMode = 0o600
)

// Source resolves credential references against token files under a
// root directory. The token is handed through opaquely; nothing in this
// module refreshes or validates it.
type Source struct {
	root string
	mu   sync.RWMutex
}

var _ ports.CredentialSource = (*Source)(nil)

func NewSource(root string) *Source {
	return &Source{root: filepath.Clean(root)}
}

type staticCredentials string

func (c staticCredentials) Token() string { return string(c) }

func (s *Source) Resolve(ctx context.Context, ref string) (domain.Credentials, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.pathForRef(ref)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("credential %q not found: %w", ref, err)
		}
		return nil, fmt.Errorf("read credential %q: %w", ref, err)
	}

	return staticCredentials(strings.TrimSpace(string(data))), nil
}

// Store writes a token for the given reference, creating the root
// directory on demand. Used by tooling that seeds demo state.
func (s *Source) Store(ctx context.Context, ref, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForRef(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), sourceDirMode); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token), secretFileMode); err != nil {
		return fmt.Errorf("write credential %q: %w", ref, err)
	}

	return nil
}

func (s *Source) pathForRef(ref string) (string, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return "", errors.New("credential ref is empty")
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") || cleaned == "." {
		return "", fmt.Errorf("invalid credential ref %q", ref)
	}

	return filepath.Join(s.root, cleaned), nil
}
