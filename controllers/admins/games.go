package admins

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SEM24/GRID-Ecommerce-Backend/controllers/games"
	"github.com/SEM24/GRID-Ecommerce-Backend/database"
	"github.com/SEM24/GRID-Ecommerce-Backend/models"
	"github.com/SEM24/GRID-Ecommerce-Backend/utils"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func gameIDFromPath(r *http.Request) (uint, bool) {
	id64, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}

// GET /api/admin/games
// Same search engine as the storefront catalog, without the active filter,
// so hidden games stay visible to staff.
func ListGamesHandler(w http.ResponseWriter, r *http.Request) {
	criteria, err := games.CriteriaFromQuery(r.URL.Query())
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id list"})
		return
	}

	page, err := games.SearchGames(criteria, false, 0)
	if err != nil {
		if errors.Is(err, games.ErrNoGames) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Games are not found in the database"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: page})
}

type gameRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Active      *bool           `json:"active,omitempty"`
	GenreIDs    []uint          `json:"genre_ids"`
	PlatformIDs []uint          `json:"platform_ids"`
	DevIDs      []uint          `json:"developer_ids"`
	PubIDs      []uint          `json:"publisher_ids"`
	TagIDs      []uint          `json:"tag_ids"`
}

func (req gameRequest) validate() string {
	if strings.TrimSpace(req.Title) == "" {
		return "Title is required"
	}
	if req.Price.IsNegative() {
		return "Price must not be negative"
	}
	return ""
}

func replaceAssociations(db *gorm.DB, game *models.Game, req gameRequest) error {
	type association struct {
		name string
		ids  []uint
		dest interface{}
	}
	for _, assoc := range []association{
		{"Genres", req.GenreIDs, &[]models.Genre{}},
		{"Platforms", req.PlatformIDs, &[]models.Platform{}},
		{"Developers", req.DevIDs, &[]models.Developer{}},
		{"Publishers", req.PubIDs, &[]models.Publisher{}},
		{"Tags", req.TagIDs, &[]models.Tag{}},
	} {
		if assoc.ids == nil {
			continue
		}
		if err := db.Find(assoc.dest, assoc.ids).Error; err != nil {
			return err
		}
		if err := db.Model(game).Association(assoc.name).Replace(assoc.dest); err != nil {
			return err
		}
	}
	return nil
}

// POST /api/admin/games
func CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: msg})
		return
	}

	game := models.Game{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       req.Price,
		Active:      true,
	}
	if req.Active != nil {
		game.Active = *req.Active
	}

	if err := database.DB.Create(&game).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create game"})
		return
	}
	if err := replaceAssociations(database.DB, &game, req); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to link associations"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Game created", Data: game})
}

// PUT /api/admin/games/{id}
func UpdateGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid game id"})
		return
	}

	var req gameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: msg})
		return
	}

	game, err := models.GetGameByID(gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Game not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	updates := map[string]interface{}{
		"title":       strings.TrimSpace(req.Title),
		"description": req.Description,
		"price":       req.Price,
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if err := database.DB.Model(game).Updates(updates).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update game"})
		return
	}
	if err := replaceAssociations(database.DB, game, req); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to link associations"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Game updated", Data: game})
}

// PATCH /api/admin/games/{id}/active
func ToggleActiveHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid game id"})
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	result := database.DB.Model(&models.Game{}).Where("id = ?", gameID).Update("active", req.Active)
	if result.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	if result.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Game not found"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Game updated"})
}

// coverObjectName derives the storage key of a cover from its public URL.
// Covers not served from the configured public base are not ours to delete.
func coverObjectName(coverURL string) string {
	base := os.Getenv("R2_PUBLIC_BASE_URL")
	if base == "" || !strings.HasPrefix(coverURL, base+"/") {
		return ""
	}
	return strings.TrimPrefix(coverURL, base+"/")
}

// DELETE /api/admin/games/{id}
func DeleteGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid game id"})
		return
	}

	game, err := models.GetGameByID(gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Game not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{
			"game_genres", "game_platforms", "game_developers",
			"game_publishers", "game_tags", "cart_items",
		} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE game_id = ?", game.ID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Game{}, game.ID).Error
	})
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete game"})
		return
	}

	// Best effort: the game row is gone either way, a stale object in the
	// bucket only wastes storage.
	if key := coverObjectName(game.CoverImageURL); key != "" {
		if err := utils.DeleteCoverImage(r.Context(), key); err != nil {
			log.Printf("[admin] deleting cover %s for game %d failed: %v", key, game.ID, err)
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Game deleted"})
}

// POST /api/admin/games/{id}/cover
// Multipart upload; the stored object URL lands on the game row.
func UploadCoverHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid game id"})
		return
	}

	game, err := models.GetGameByID(gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Game not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid multipart body"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Missing file field"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unsupported image format"})
		return
	}

	objectName := fmt.Sprintf("covers/%d%s", game.ID, ext)
	url, err := utils.UploadCoverImage(r.Context(), objectName, file)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Upload failed"})
		return
	}

	if err := database.DB.Model(game).Update("cover_image_url", url).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Cover uploaded",
		Data:    map[string]interface{}{"cover_image_url": url},
	})
}
