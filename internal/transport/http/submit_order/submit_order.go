package submitorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/innatthecape/breakfast-svc/internal/service/models/credential"
	"github.com/innatthecape/breakfast-svc/internal/service/models/order"
	"github.com/innatthecape/breakfast-svc/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	SubmitOrder(ctx context.Context, sub order.Submission) (order.Record, error)
}

// response echoes the stored canonical order back to the guest.
type response struct {
	Message  string         `json:"message"`
	OrderID  string         `json:"order_id"`
	Customer order.Customer `json:"customer"`
	Order    order.Payload  `json:"order"`
}

// SubmitOrder handles a breakfast order submission.
func SubmitOrder(w http.ResponseWriter, r *http.Request, service service) {
	var sub order.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON")
		slog.Error("Error decoding order submission", "error", err)

		return
	}

	rec, err := service.SubmitOrder(r.Context(), sub)
	if err != nil {
		status, message := classify(err)
		respond.Error(w, status, message)
		slog.Error("Error submitting order", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, response{
		Message:  "Order received and saved successfully",
		OrderID:  rec.OrderID,
		Customer: rec.Payload.Customer,
		Order:    rec.Payload,
	})
}

// classify maps service errors onto the submission boundary's status codes.
// Authorization failures never reveal which tokens are valid.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, order.ErrMalformedRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, credential.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized. Try re-scanning the QR Code, or the QR code may have expired."
	case errors.Is(err, credential.ErrNoValidCredentials):
		return http.StatusInternalServerError, "Database error (no valid credentials)"
	case errors.Is(err, credential.ErrStoreUnavailable):
		return http.StatusInternalServerError, "Database error"
	case errors.Is(err, order.ErrStorageWrite):
		return http.StatusInternalServerError, "Failed to save order"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
