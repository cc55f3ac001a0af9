package models

import (
	"time"

	"github.com/SEM24/GRID-Ecommerce-Backend/database"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserInfo struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Email     string          `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Balance   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Library of purchased games.
	Games []Game `gorm:"many2many:user_games" json:"-"`
}

func (UserInfo) TableName() string {
	return "users"
}

// GetUserByID retrieves a user by primary key.
func GetUserByID(id uint) (*UserInfo, error) {
	var user UserInfo
	if err := database.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UserOwnsGame answers whether the user's library contains the game.
// Anonymous callers (userID 0) own nothing.
func UserOwnsGame(userID, gameID uint) bool {
	if userID == 0 {
		return false
	}
	var count int64
	database.DB.Table("user_games").
		Where("user_info_id = ? AND game_id = ?", userID, gameID).
		Count(&count)
	return count > 0
}

// GrantGames appends games to the user's library inside the caller's
// transaction. Rows already present are left alone.
func GrantGames(tx *gorm.DB, userID uint, gameIDs []uint) error {
	for _, gameID := range gameIDs {
		var count int64
		if err := tx.Table("user_games").
			Where("user_info_id = ? AND game_id = ?", userID, gameID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := tx.Exec(
			"INSERT INTO user_games (user_info_id, game_id) VALUES (?, ?)",
			userID, gameID,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
