package models

import (
	"time"

	"github.com/SEM24/GRID-Ecommerce-Backend/database"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_cart_user_game,unique" json:"user_id"`
	GameID    uint      `gorm:"not null;index:idx_cart_user_game,unique" json:"game_id"`
	Game      *Game     `gorm:"foreignKey:GameID" json:"game,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// CartForUser loads the user's cart with game rows preloaded and returns the
// running total of the current game prices.
func CartForUser(userID uint) ([]CartItem, decimal.Decimal, error) {
	var items []CartItem
	err := database.DB.Preload("Game").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		if item.Game != nil {
			total = total.Add(item.Game.Price)
		}
	}
	return items, total, nil
}

// ClearCart removes every cart row of the user inside the caller's
// transaction.
func ClearCart(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&CartItem{}).Error
}
