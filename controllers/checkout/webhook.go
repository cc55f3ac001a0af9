package checkout

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/SEM24/GRID-Ecommerce-Backend/models"
	"github.com/SEM24/GRID-Ecommerce-Backend/utils"
	"gorm.io/gorm"
)

type providerWebhook struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

// POST /api/checkout/webhook
// Called by the payment provider once a session settles. The provider
// retries deliveries, so completion of an already-paid transaction is
// acknowledged without reapplying it.
func WebhookHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unreadable body"})
		return
	}

	if !utils.VerifyWebhookSignature(body, r.Header.Get("X-Signature")) {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid signature"})
		return
	}

	var event providerWebhook
	if err := json.Unmarshal(body, &event); err != nil || event.SessionID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid payload"})
		return
	}

	if !strings.EqualFold(event.Status, "paid") {
		// Non-settlement events carry nothing to apply.
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Ignored"})
		return
	}

	if err := CompleteTransaction(event.SessionID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Transaction " + event.SessionID + " is not found"})
		case errors.Is(err, models.ErrTransactionPaid):
			utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Already completed"})
		default:
			log.Printf("[checkout] completing transaction %s failed: %v", event.SessionID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Completed"})
}
