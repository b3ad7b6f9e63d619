package ports

import (
	"context"

	"github.com/piot/conclave-console/internal/domain"
)

type IdentityStore interface {
	Load(ctx context.Context) (domain.Identity, error)
	Save(ctx context.Context, identity domain.Identity) error
}
