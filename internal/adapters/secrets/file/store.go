// Package file stores the identity secret on disk, TOML-encoded, with
// owner-only permissions. The same file feeds the console and the one-shot
// login command.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/piot/conclave-console/internal/domain"
	"github.com/piot/conclave-console/internal/ports"
)

const (
	storeDirMode  = 0o700
	storeFileMode = 0o600
)

type identitySchema struct {
	UserID uint64 `toml:"user_id"`
	Secret string `toml:"secret"`
}

type Store struct {
	path string
	mu   sync.RWMutex
}

var _ ports.IdentityStore = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

func (s *Store) Load(ctx context.Context) (domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Identity{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Identity{}, fmt.Errorf("identity file %q: %w", s.path, domain.ErrIdentityNotFound)
		}
		return domain.Identity{}, fmt.Errorf("read identity file %q: %w", s.path, err)
	}

	var schema identitySchema
	if err := toml.Unmarshal(data, &schema); err != nil {
		return domain.Identity{}, fmt.Errorf("decode identity file %q: %w", s.path, err)
	}

	identity := domain.Identity{
		UserID: domain.UserID(schema.UserID),
		Secret: schema.Secret,
	}
	if !identity.Valid() {
		return domain.Identity{}, fmt.Errorf("identity file %q is incomplete: %w", s.path, domain.ErrIdentityNotFound)
	}

	return identity, nil
}

func (s *Store) Save(ctx context.Context, identity domain.Identity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !identity.Valid() {
		return errors.New("identity requires both a user id and a secret")
	}

	data, err := toml.Marshal(identitySchema{
		UserID: uint64(identity.UserID),
		Secret: identity.Secret,
	})
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), storeDirMode); err != nil {
		return fmt.Errorf("create identity directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, storeFileMode); err != nil {
		return fmt.Errorf("write identity file %q: %w", s.path, err)
	}

	return nil
}
