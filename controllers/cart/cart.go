package cart

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

func requireUser(w http.ResponseWriter, r *http.Request) (uint, bool) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return 0, false
	}
	return uid, true
}

func gameIDFromPath(r *http.Request) (uint, bool) {
	id64, err := strconv.ParseUint(mux.Vars(r)["gameID"], 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}

// GET /api/cart
func ViewCartHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	items, total, err := models.CartForUser(uid)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"cartItems": items,
			"totalCost": total,
		},
	})
}

// POST /api/cart/{gameID}
func AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	gameID, ok := gameIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid game id"})
		return
	}

	game, err := models.GetActiveGameByID(gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Game with id " + strconv.FormatUint(uint64(gameID), 10) + " is not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	if models.UserOwnsGame(uid, game.ID) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Game is already in your library"})
		return
	}

	var existing int64
	database.DB.Model(&models.CartItem{}).
		Where("user_id = ? AND game_id = ?", uid, game.ID).
		Count(&existing)
	if existing > 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Game is already in the cart"})
		return
	}

	if err := database.DB.Create(&models.CartItem{UserID: uid, GameID: game.ID}).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Game added to cart"})
}

// DELETE /api/cart/{gameID}
func RemoveFromCartHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	gameID, ok := gameIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid game id"})
		return
	}

	result := database.DB.Where("user_id = ? AND game_id = ?", uid, gameID).Delete(&models.CartItem{})
	if result.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	if result.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Game is not in the cart"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Game removed from cart"})
}

// DELETE /api/cart
func ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := models.ClearCart(database.DB, uid); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Cart cleared"})
}
