package routes

import (
	"net/http"

	"github.com/SEM24/GRID-Ecommerce-Backend/controllers/admins"
	"github.com/SEM24/GRID-Ecommerce-Backend/middleware"
	"github.com/gorilla/mux"
)

func registerAdminRoutes(r *mux.Router) {
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(middleware.AdminAuthMiddleware)

	admin.HandleFunc("/games", admins.ListGamesHandler).Methods(http.MethodGet)
	admin.HandleFunc("/games", admins.CreateGameHandler).Methods(http.MethodPost)
	admin.HandleFunc("/games/{id:[0-9]+}", admins.UpdateGameHandler).Methods(http.MethodPut)
	admin.HandleFunc("/games/{id:[0-9]+}", admins.DeleteGameHandler).Methods(http.MethodDelete)
	admin.HandleFunc("/games/{id:[0-9]+}/active", admins.ToggleActiveHandler).Methods(http.MethodPatch)
	admin.HandleFunc("/games/{id:[0-9]+}/cover", admins.UploadCoverHandler).Methods(http.MethodPost)
}
