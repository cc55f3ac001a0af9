package games

import (
	"net/http"

	"github.com/SEM24/GRID-Ecommerce-Backend/database"
	"github.com/SEM24/GRID-Ecommerce-Backend/models"
	"github.com/SEM24/GRID-Ecommerce-Backend/utils"
)

// Filter dictionaries for the storefront sidebar.

func listNamed(dest interface{}) error {
	return database.DB.Order("name ASC").Find(dest).Error
}

// GET /api/genres
func ListGenresHandler(w http.ResponseWriter, r *http.Request) {
	var genres []models.Genre
	if err := listNamed(&genres); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: genres})
}

// GET /api/platforms
func ListPlatformsHandler(w http.ResponseWriter, r *http.Request) {
	var platforms []models.Platform
	if err := listNamed(&platforms); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: platforms})
}

// GET /api/tags
func ListTagsHandler(w http.ResponseWriter, r *http.Request) {
	var tags []models.Tag
	if err := listNamed(&tags); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: tags})
}
