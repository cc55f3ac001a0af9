package models

import (
	"time"

	"github.com/SEM24/GRID-Ecommerce-Backend/database"
	"github.com/shopspring/decimal"
)

type Game struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Title         string          `gorm:"size:255;not null;index" json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	Active        bool            `gorm:"default:true;index" json:"active"`
	CoverImageURL string          `gorm:"size:512" json:"cover_image_url"`
	ReleaseDate   *time.Time      `json:"release_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Genres     []Genre     `gorm:"many2many:game_genres" json:"genres,omitempty"`
	Platforms  []Platform  `gorm:"many2many:game_platforms" json:"platforms,omitempty"`
	Developers []Developer `gorm:"many2many:game_developers" json:"developers,omitempty"`
	Publishers []Publisher `gorm:"many2many:game_publishers" json:"publishers,omitempty"`
	Tags       []Tag       `gorm:"many2many:game_tags" json:"tags,omitempty"`
}

func (Game) TableName() string {
	return "games"
}

type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Genre) TableName() string {
	return "genres"
}

type Platform struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Platform) TableName() string {
	return "platforms"
}

type Developer struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Developer) TableName() string {
	return "developers"
}

type Publisher struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Publisher) TableName() string {
	return "publishers"
}

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}

// GetGameByID retrieves a game regardless of its active flag.
func GetGameByID(id uint) (*Game, error) {
	var game Game
	if err := database.DB.First(&game, id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// GetActiveGameByID retrieves a game only when it is visible in the storefront.
func GetActiveGameByID(id uint) (*Game, error) {
	var game Game
	if err := database.DB.Where("active = ?", true).First(&game, id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// MaxCatalogPrice returns the highest price across all active games. It is a
// catalog-wide aggregate independent of any search filter, used by the
// storefront to render the price-range slider.
func MaxCatalogPrice() (decimal.Decimal, error) {
	var max decimal.NullDecimal
	err := database.DB.Model(&Game{}).
		Where("active = ?", true).
		Select("MAX(price)").
		Scan(&max).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !max.Valid {
		return decimal.Zero, nil
	}
	return max.Decimal, nil
}
