package tokensvc

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/innatthecape/breakfast-svc/internal/service/models/credential"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	tokenLength = 25
	qrSize      = 512
)

// IssuedToken is what a successful issuance returns.
type IssuedToken struct {
	Token     string `json:"token"`
	URL       string `json:"url"`
	Recipient string `json:"recipient"`
}

// Issue creates a single-use access token, stores it with its creation
// timestamp, renders it as a QR code inside a one-page PDF letter and
// emails the letter to the guest.
func (s *TokenService) Issue(ctx context.Context, recipientEmail string) (IssuedToken, error) {
	token := generateToken()

	err := s.tokenRepo.Insert(ctx, credential.Credential{
		RecordType: "token",
		Token:      token,
		CreatedAt:  s.now().Unix(),
	})
	if err != nil {
		return IssuedToken{}, fmt.Errorf("failed to store issued token: %w", err)
	}

	qrURL := s.baseURL + "?t=" + token

	qrPNG, err := qrcode.Encode(qrURL, qrcode.High, qrSize)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdfContent, err := buildTokenPDF(qrPNG)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("failed to build token PDF: %w", err)
	}

	err = s.mailer.SendWithAttachment(
		ctx,
		recipientEmail,
		"Your Breakfast Order QR Code",
		"Scan the attached QR code to place your breakfast order.",
		"breakfast-qr.pdf",
		bytes.NewReader(pdfContent),
	)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("failed to email token PDF: %w", err)
	}

	return IssuedToken{
		Token:     token,
		URL:       qrURL,
		Recipient: recipientEmail,
	}, nil
}

// generateToken derives an opaque credential from a fresh UUID.
func generateToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
}
