package games

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SEM24/GRID-Ecommerce-Backend/database"
	"github.com/SEM24/GRID-Ecommerce-Backend/models"
	"github.com/SEM24/GRID-Ecommerce-Backend/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// ExtendedGame is the full product-page view: the entity with its
// associations plus the ownership flag.
type ExtendedGame struct {
	models.Game
	OwnedByCurrentUser bool `json:"ownedByCurrentUser"`
}

func gameIDFromPath(r *http.Request) (uint, bool) {
	id64, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}

// GET /api/games/{id}
func GetGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid game id"})
		return
	}

	var game models.Game
	err := database.DB.
		Preload("Genres").Preload("Platforms").
		Preload("Developers").Preload("Publishers").Preload("Tags").
		Where("active = ?", true).
		First(&game, gameID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Game with id " + strconv.FormatUint(uint64(gameID), 10) + " is not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	uid, _ := utils.GetUserID(r)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: ExtendedGame{
			Game:               game,
			OwnedByCurrentUser: models.UserOwnsGame(uid, game.ID),
		},
	})
}
