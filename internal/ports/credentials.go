package ports

import (
	"context"

	"github.com/cloudnav/accounttree/internal/domain"
)

// CredentialSource resolves a credential reference (typically a
// "file://path"-style key) into an already-resolved credential. Used by
// provider adapters; the tree engine never touches it.
type CredentialSource interface {
	Resolve(ctx context.Context, ref string) (domain.Credentials, error)
}
