package games

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/SEM24/GRID-Ecommerce-Backend/database"
	"github.com/SEM24/GRID-Ecommerce-Backend/models"
	"github.com/SEM24/GRID-Ecommerce-Backend/utils"
	"github.com/shopspring/decimal"
)

// ErrNoGames is returned when a search lands on an empty page. The catalog
// treats that as a not-found condition, not an empty success.
var ErrNoGames = errors.New("games are not found in the database")

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// CatalogPage is the paged search response. TotalPages mirrors the
// behavior storefront clients were built against: it reports one less than
// the computed page count.
type CatalogPage struct {
	Games       []ShortGameModel `json:"games"`
	TotalItems  int64            `json:"totalItems"`
	TotalPages  int              `json:"totalPages"`
	MaxPrice    decimal.Decimal  `json:"maxPrice"`
	CurrentPage int              `json:"currentPage"`
}

// CriteriaFromQuery translates catalog query parameters into a GameCriteria.
// Malformed id lists surface as ErrInvalidIDList.
func CriteriaFromQuery(q url.Values) (models.GameCriteria, error) {
	criteria := models.GameCriteria{
		Size:  defaultPageSize,
		Sort:  strings.TrimSpace(q.Get("sort")),
		Title: strings.TrimSpace(q.Get("title")),
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		criteria.Page = page
	}
	if size, err := strconv.Atoi(q.Get("size")); err == nil && size > 0 {
		if size > maxPageSize {
			size = maxPageSize
		}
		criteria.Size = size
	}

	ids, err := models.ParseIDs(q.Get("id"))
	if err != nil {
		return criteria, err
	}
	criteria.IDs = ids

	tagIDs, err := models.ParseIDs(q.Get("tags"))
	if err != nil {
		return criteria, err
	}
	criteria.TagIDs = tagIDs

	if raw := strings.TrimSpace(q.Get("maxPrice")); raw != "" {
		if price, err := decimal.NewFromString(raw); err == nil && !price.IsNegative() {
			criteria.MaxPrice = &price
		}
	}

	criteria.Genres = models.ParseNames(q.Get("genres"))
	criteria.Platforms = models.ParseNames(q.Get("platforms"))
	criteria.Developers = models.ParseNames(q.Get("developers"))
	criteria.Publishers = models.ParseNames(q.Get("publishers"))
	return criteria, nil
}

// SearchGames runs the composed criteria against the catalog and projects
// the matching page. applyActiveFilter is true for storefront browsing and
// false for admin views.
func SearchGames(criteria models.GameCriteria, applyActiveFilter bool, userID uint) (*CatalogPage, error) {
	scopes := criteria.Scopes()
	if applyActiveFilter {
		scopes = append(scopes, models.ActiveOnly())
	}

	var totalItems int64
	if err := database.DB.Model(&models.Game{}).Scopes(scopes...).Count(&totalItems).Error; err != nil {
		return nil, err
	}

	var matched []models.Game
	err := database.DB.Model(&models.Game{}).
		Scopes(scopes...).
		Order(models.OrderClause(criteria.Sort)).
		Scopes(models.Paginate(criteria.Page, criteria.Size)).
		Find(&matched).Error
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, ErrNoGames
	}

	maxPrice, err := models.MaxCatalogPrice()
	if err != nil {
		return nil, err
	}

	projected := make([]ShortGameModel, 0, len(matched))
	for _, game := range matched {
		projected = append(projected, toShortGame(game, models.UserOwnsGame(userID, game.ID)))
	}

	return &CatalogPage{
		Games:       projected,
		TotalItems:  totalItems,
		TotalPages:  totalPages(totalItems, criteria.Size),
		MaxPrice:    maxPrice,
		CurrentPage: criteria.Page,
	}, nil
}

// totalPages reports one less than the ceiling page count. Storefront
// clients treat it as the index of the last page, so changing it would
// break their pagination controls.
func totalPages(totalItems int64, size int) int {
	return int(math.Ceil(float64(totalItems)/float64(size))) - 1
}

// GET /api/games
func CatalogHandler(w http.ResponseWriter, r *http.Request) {
	criteria, err := CriteriaFromQuery(r.URL.Query())
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id list"})
		return
	}

	uid, _ := utils.GetUserID(r)
	page, err := SearchGames(criteria, true, uid)
	if err != nil {
		if errors.Is(err, ErrNoGames) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Games are not found in the database"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: page})
}
