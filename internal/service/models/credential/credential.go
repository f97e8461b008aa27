package credential

import "errors"

// ErrStoreUnavailable means the credential store could not be read. This is
// an outage, not an empty-state condition; the two stay distinguishable so
// operators can tell them apart.
var ErrStoreUnavailable = errors.New("credential store unavailable")

// ErrNoValidCredentials means the store was read successfully but holds no
// tokens at all.
var ErrNoValidCredentials = errors.New("no valid credentials")

// ErrUnauthorized means the presented token is not in the valid set.
var ErrUnauthorized = errors.New("unauthorized")

// Credential is a stored access token. The store's key is (RecordType,
// CreatedAt), not the token itself, which is why membership checks scan the
// whole table.
type Credential struct {
	RecordType string
	Token      string
	CreatedAt  int64
}
