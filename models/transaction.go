package models

import (
	"errors"
	"time"

	"github.com/SEM24/GRID-Ecommerce-Backend/database"
	"github.com/shopspring/decimal"
)

// BalanceAction describes whether a transaction debits stored balance,
// credits it, or leaves it untouched.
type BalanceAction string

const (
	BalancePayment  BalanceAction = "PAYMENT_WITH_BALANCE"
	BalanceRecharge BalanceAction = "BALANCE_RECHARGE"
	BalanceNone     BalanceAction = "NONE"
)

// ErrTransactionPaid rejects a second completion of the same transaction.
var ErrTransactionPaid = errors.New("transaction already paid")

type Transaction struct {
	// TransactionID is the payment-provider session id; it is the caller's
	// responsibility to never reuse one.
	TransactionID string          `gorm:"primaryKey;size:191" json:"transaction_id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	User          *UserInfo       `gorm:"foreignKey:UserID" json:"-"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
	UsedBalance   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"used_balance"`
	BalanceAction BalanceAction   `gorm:"size:32;not null;default:NONE" json:"balance_action"`
	PaymentMethod string          `gorm:"size:50" json:"payment_method"`
	Paid          bool            `gorm:"default:false" json:"paid"`
	RedirectURL   *string         `gorm:"size:512" json:"redirect_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Games []TransactionGame `gorm:"foreignKey:TransactionID" json:"games,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionGame is one ledger line item. PriceOnPay freezes the game's
// price at purchase time; it is never re-read from the live game row.
type TransactionGame struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TransactionID string          `gorm:"size:191;not null;index" json:"transaction_id"`
	GameID        uint            `gorm:"not null" json:"game_id"`
	Game          *Game           `gorm:"foreignKey:GameID" json:"game,omitempty"`
	PriceOnPay    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_on_pay"`
}

func (TransactionGame) TableName() string {
	return "transaction_games"
}

// UsedBalanceFor caps the balance spent on a purchase at the cart total, so
// a large stored balance never over-debits.
func UsedBalanceFor(balance, total decimal.Decimal) decimal.Decimal {
	if balance.LessThan(total) {
		return balance
	}
	return total
}

// ApplyBalanceEffect mutates the user's balance according to the
// transaction's balance action. It does not persist anything.
func (t *Transaction) ApplyBalanceEffect(user *UserInfo) {
	switch t.BalanceAction {
	case BalancePayment:
		user.Balance = user.Balance.Sub(t.UsedBalance)
	case BalanceRecharge:
		user.Balance = user.Balance.Add(t.TotalAmount)
	}
}

// MarkPaid moves the transaction to its terminal state: paid, redirect URL
// cleared, updated-at stamped.
func (t *Transaction) MarkPaid(now time.Time) {
	t.Paid = true
	t.RedirectURL = nil
	t.UpdatedAt = now
}

// TransactionsForUser returns the user's transactions, newest first.
func TransactionsForUser(userID uint, limit, offset int) ([]Transaction, int64, error) {
	var total int64
	if err := database.DB.Model(&Transaction{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var transactions []Transaction
	err := database.DB.Preload("Games").Preload("Games.Game").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}
