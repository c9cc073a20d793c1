package payment

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Handler exposes the simulated payment endpoint.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(delay time.Duration, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewService(delay), logger: logger}
}

// ChargeRequest is the payment payload. All fields are required; the card
// data is validated for presence only and never stored or logged.
type ChargeRequest struct {
	CardNumber     string  `json:"cardNumber"`
	ExpiryDate     string  `json:"expiryDate"`
	CVV            string  `json:"cvv"`
	CardHolderName string  `json:"cardHolderName"`
	Amount         float64 `json:"amount"`
}

// ChargeResponse echoes the amount with a synthetic confirmation.
type ChargeResponse struct {
	Message       string  `json:"message"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
}

func (h *Handler) Charge(w http.ResponseWriter, r *http.Request) {
	var req ChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid payment payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if req.CardNumber == "" || req.ExpiryDate == "" || req.CVV == "" || req.CardHolderName == "" || req.Amount <= 0 {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "all payment fields are required"})
		return
	}
	conf, err := h.svc.Charge(r.Context(), req.Amount)
	if err != nil {
		h.logger.Warnw("payment processing failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "payment failed, please try again"})
		return
	}
	h.writeJSON(w, http.StatusOK, ChargeResponse{
		Message:       "payment processed successfully",
		TransactionID: conf.TransactionID,
		Amount:        conf.Amount,
		Status:        conf.Status,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
