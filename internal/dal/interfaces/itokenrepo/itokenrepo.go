package itokenrepo

import (
	"context"

	"github.com/innatthecape/breakfast-svc/internal/service/models/credential"
)

// ITokenRepository is an interface for the credential store.
type ITokenRepository interface {
	// List returns every stored credential. Membership checks read the
	// whole table because the store is not keyed by token.
	List(ctx context.Context) ([]credential.Credential, error)
	// Insert stores a credential, replacing any existing credential with
	// the same (record type, created-at) key.
	Insert(ctx context.Context, cred credential.Credential) error
	// DeleteOldest removes the count oldest credentials by creation
	// timestamp and returns the deleted records.
	DeleteOldest(ctx context.Context, count int) ([]credential.Credential, error)
}
