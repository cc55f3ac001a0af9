package games

import (
	"net/http"
	"strconv"

	"github.com/SEM24/GRID-Ecommerce-Backend/database"
	"github.com/SEM24/GRID-Ecommerce-Backend/models"
	"github.com/SEM24/GRID-Ecommerce-Backend/utils"
)

const defaultShowcaseQty = 10

func qtyParam(r *http.Request) int {
	qty, err := strconv.Atoi(r.URL.Query().Get("qty"))
	if err != nil || qty <= 0 {
		return defaultShowcaseQty
	}
	return qty
}

func loadActiveGames(preloadGenres bool) ([]models.Game, error) {
	query := database.DB.Where("active = ?", true)
	if preloadGenres {
		query = query.Preload("Genres")
	}
	var games []models.Game
	if err := query.Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// GET /api/games/popular?qty=
// No sales metrics exist yet, so "popular" is a random slice of the catalog.
func PopularGamesHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	all, err := loadActiveGames(false)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	projected := make([]PopularGameModel, 0, len(all))
	for _, game := range all {
		projected = append(projected, toPopularGame(game, models.UserOwnsGame(uid, game.ID)))
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    utils.Sample(projected, qtyParam(r)),
	})
}

// GET /api/games/random?qty=
func RandomGamesHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	all, err := loadActiveGames(true)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	projected := make([]GenreLimitedGameModel, 0, len(all))
	for _, game := range all {
		if view, ok := toGenreLimitedGame(game, "", models.UserOwnsGame(uid, game.ID)); ok {
			projected = append(projected, view)
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    utils.Sample(projected, qtyParam(r)),
	})
}

// GET /api/games/genre?qty=&excluded=
func GamesByGenreHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	excluded := r.URL.Query().Get("excluded")
	qty := qtyParam(r)

	all, err := loadActiveGames(true)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	projected := make([]GenreLimitedGameModel, 0, qty)
	for _, game := range all {
		view, ok := toGenreLimitedGame(game, excluded, models.UserOwnsGame(uid, game.ID))
		if !ok {
			continue
		}
		projected = append(projected, view)
		if len(projected) >= qty {
			break
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: projected})
}

// GET /api/games/offers?query=&qty=
func SpecialOffersHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	qty := qtyParam(r)

	var games []models.Game
	switch r.URL.Query().Get("query") {
	case "release date":
		err := database.DB.Where("active = ? AND release_date IS NOT NULL", true).
			Order("release_date ASC").
			Limit(qty).
			Find(&games).Error
		if err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
			return
		}
	case "sales":
		all, err := loadActiveGames(false)
		if err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
			return
		}
		games = utils.Sample(all, qty)
	default:
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Games are not found in database"})
		return
	}

	projected := make([]PopularGameModel, 0, len(games))
	for _, game := range games {
		projected = append(projected, toPopularGame(game, models.UserOwnsGame(uid, game.ID)))
		if len(projected) >= qty {
			break
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: projected})
}

// GET /api/games/search?text=&qty=
func SearchByTitleHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	text := r.URL.Query().Get("text")
	qty := qtyParam(r)

	var games []models.Game
	err := database.DB.Preload("Genres").
		Scopes(models.ByTitle(text), models.ActiveOnly()).
		Limit(qty).
		Find(&games).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	projected := make([]GenreLimitedGameModel, 0, len(games))
	for _, game := range games {
		if view, ok := toGenreLimitedGame(game, "", models.UserOwnsGame(uid, game.ID)); ok {
			projected = append(projected, view)
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: projected})
}
