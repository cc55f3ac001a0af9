package checkout

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/SEM24/GRID-Ecommerce-Backend/database"
	"github.com/SEM24/GRID-Ecommerce-Backend/models"
	"github.com/SEM24/GRID-Ecommerce-Backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrBalanceCoversTotal rejects a mixed balance payment when the stored
// balance alone covers the cart: the shopper should use balance-only
// payment instead of going through the provider for a zero charge.
var ErrBalanceCoversTotal = errors.New("balance covers the total amount")

// ErrEmptyCart rejects checkout of an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// TotalForBill sums the current cart prices and, for a payment that spends
// stored balance, returns the remainder the provider must charge.
func TotalForBill(action models.BalanceAction, items []models.CartItem, balance decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		if item.Game != nil {
			total = total.Add(item.Game.Price)
		}
	}
	if action == models.BalancePayment {
		if balance.GreaterThanOrEqual(total) {
			return decimal.Zero, ErrBalanceCoversTotal
		}
		total = total.Sub(balance)
	}
	return total, nil
}

// PlaceTemporaryTransaction records a pending transaction for the session.
// A balance recharge carries the amount directly; any other action snapshots
// the user's cart into frozen line items and clears the cart.
func PlaceTemporaryTransaction(user *models.UserInfo, amount decimal.Decimal, sessionID, redirectURL string, action models.BalanceAction, paymentMethod string) error {
	transaction := models.Transaction{
		TransactionID: sessionID,
		UserID:        user.ID,
		BalanceAction: action,
		PaymentMethod: paymentMethod,
		Paid:          false,
		RedirectURL:   &redirectURL,
		CreatedAt:     time.Now(),
	}

	if action == models.BalanceRecharge {
		transaction.TotalAmount = amount
		return database.DB.Create(&transaction).Error
	}

	items, total, err := models.CartForUser(user.ID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrEmptyCart
	}

	if action == models.BalancePayment {
		transaction.UsedBalance = models.UsedBalanceFor(user.Balance, total)
	}
	transaction.TotalAmount = total

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}
		for _, item := range items {
			if item.Game == nil {
				continue
			}
			line := models.TransactionGame{
				TransactionID: transaction.TransactionID,
				GameID:        item.GameID,
				PriceOnPay:    item.Game.Price,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}
		return models.ClearCart(tx, user.ID)
	})
}

// CompleteTransaction finalizes a pending transaction: applies the balance
// effect, grants purchased games, marks paid and clears the redirect URL.
// A transaction already in its terminal state is rejected rather than
// applied twice.
func CompleteTransaction(sessionID string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Games").
			First(&transaction, "transaction_id = ?", sessionID).Error
		if err != nil {
			return err
		}
		if transaction.Paid {
			return models.ErrTransactionPaid
		}

		var user models.UserInfo
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, transaction.UserID).Error; err != nil {
			return err
		}

		transaction.ApplyBalanceEffect(&user)
		if err := tx.Model(&user).Update("balance", user.Balance).Error; err != nil {
			return err
		}

		if transaction.BalanceAction != models.BalanceRecharge {
			gameIDs := make([]uint, 0, len(transaction.Games))
			for _, line := range transaction.Games {
				gameIDs = append(gameIDs, line.GameID)
			}
			if err := models.GrantGames(tx, user.ID, gameIDs); err != nil {
				return err
			}
		}

		transaction.MarkPaid(time.Now())
		return tx.Model(&transaction).
			Select("paid", "redirect_url", "updated_at").
			Updates(map[string]interface{}{
				"paid":         transaction.Paid,
				"redirect_url": nil,
				"updated_at":   transaction.UpdatedAt,
			}).Error
	})
}

type checkoutRequest struct {
	BalanceAction models.BalanceAction `json:"balanceAction"`
	PaymentMethod string               `json:"paymentMethod"`
	// Amount is only honored for a balance recharge.
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// POST /api/checkout
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON"})
		return
	}
	switch req.BalanceAction {
	case models.BalancePayment, models.BalanceRecharge, models.BalanceNone:
	case "":
		req.BalanceAction = models.BalanceNone
	default:
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unknown balance action"})
		return
	}

	user, err := models.GetUserByID(uid)
	if err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	var amount decimal.Decimal
	if req.BalanceAction == models.BalanceRecharge {
		if req.Amount == nil || !req.Amount.IsPositive() {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Recharge amount must be positive"})
			return
		}
		amount = *req.Amount
	} else {
		items, _, err := models.CartForUser(uid)
		if err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
			return
		}
		if len(items) == 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Cart is empty"})
			return
		}
		amount, err = TotalForBill(req.BalanceAction, items, user.Balance)
		if err != nil {
			if errors.Is(err, ErrBalanceCoversTotal) {
				utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Balance is higher than the total amount. Please choose a payment with balance instead"})
				return
			}
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
			return
		}
	}

	sessionID, redirectURL, err := utils.CreateCheckoutSession(r.Context(), amount, req.PaymentMethod)
	if err != nil {
		log.Printf("[checkout] provider session failed for user %d: %v", uid, err)
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Payment provider is unavailable"})
		return
	}

	if err := PlaceTemporaryTransaction(user, amount, sessionID, redirectURL, req.BalanceAction, req.PaymentMethod); err != nil {
		if errors.Is(err, ErrEmptyCart) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Cart is empty"})
			return
		}
		log.Printf("[checkout] placing transaction %s failed: %v", sessionID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"sessionId":   sessionID,
			"redirectUrl": redirectURL,
		},
	})
}
