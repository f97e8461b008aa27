package issuetoken

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/innatthecape/breakfast-svc/internal/service/services/tokensvc"
	"github.com/innatthecape/breakfast-svc/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	Issue(ctx context.Context, recipientEmail string) (tokensvc.IssuedToken, error)
}

type request struct {
	RecipientEmail string `json:"recipient_email"`
}

type response struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	URL       string `json:"url"`
	Recipient string `json:"recipient"`
}

// IssueToken generates a new access token, mails the QR PDF to the guest
// and returns the token.
func IssueToken(w http.ResponseWriter, r *http.Request, service service) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON")
		slog.Error("Error decoding token request", "error", err)

		return
	}

	if req.RecipientEmail == "" {
		respond.Error(w, http.StatusBadRequest, "recipient_email is required")

		return
	}

	issued, err := service.Issue(r.Context(), req.RecipientEmail)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Failed to issue token")
		slog.Error("Error issuing token", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, response{
		Message:   "QR code PDF generated and sent successfully",
		Token:     issued.Token,
		URL:       issued.URL,
		Recipient: issued.Recipient,
	})
}
