package tokensvc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/innatthecape/breakfast-svc/internal/dal/interfaces/itokenrepo"
	"github.com/innatthecape/breakfast-svc/internal/service/models/credential"
)

// TokenService issues access tokens and validates presented ones against
// the credential store.
type TokenService struct {
	tokenRepo itokenrepo.ITokenRepository
	mailer    mailer
	baseURL   string
	now       func() time.Time
}

// mailer is the outbound mail dependency for issued token letters.
type mailer interface {
	SendWithAttachment(ctx context.Context, to, subject, textBody, filename string, attachment io.Reader) error
}

// option is a function that configures the TokenService.
type option func(*TokenService)

// MustNewTokenService creates a new TokenService.
func MustNewTokenService(opts ...option) *TokenService {
	s := &TokenService{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithTokenRepository sets the credential store repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithTokenRepository(repo itokenrepo.ITokenRepository) option {
	return func(s *TokenService) {
		s.tokenRepo = repo
	}
}

// WithMailer sets the outbound mail client.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMailer(m mailer) option {
	return func(s *TokenService) {
		s.mailer = m
	}
}

// WithBaseURL sets the public form URL embedded in issued QR codes.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithBaseURL(baseURL string) option {
	return func(s *TokenService) {
		s.baseURL = baseURL
	}
}

// Authorize checks the presented token against the full set of currently
// stored tokens. The set is fetched fresh on every call so a revoked token
// is rejected on the next request. Matching is exact and case-sensitive.
func (s *TokenService) Authorize(ctx context.Context, presented string) error {
	creds, err := s.tokenRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", credential.ErrStoreUnavailable, err)
	}

	valid := make([]string, 0, len(creds))
	for _, cred := range creds {
		if cred.Token != "" {
			valid = append(valid, cred.Token)
		}
	}

	if len(valid) == 0 {
		slog.Warn("No valid credentials found in store")

		return credential.ErrNoValidCredentials
	}

	for _, token := range valid {
		if token == presented {
			return nil
		}
	}

	slog.Warn("Attempt to order breakfast with invalid token")

	return credential.ErrUnauthorized
}

// SweepOldest deletes the count oldest credentials, bounding store growth.
func (s *TokenService) SweepOldest(ctx context.Context, count int) ([]credential.Credential, error) {
	deleted, err := s.tokenRepo.DeleteOldest(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("failed to sweep credentials: %w", err)
	}

	return deleted, nil
}
