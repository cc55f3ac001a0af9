package routes

import (
	"net/http"

	"github.com/SEM24/GRID-Ecommerce-Backend/controllers/cart"
	"github.com/SEM24/GRID-Ecommerce-Backend/controllers/checkout"
	"github.com/SEM24/GRID-Ecommerce-Backend/controllers/games"
	"github.com/SEM24/GRID-Ecommerce-Backend/controllers/users"
	"github.com/SEM24/GRID-Ecommerce-Backend/middleware"
	"github.com/gorilla/mux"
)

func registerStoreRoutes(r *mux.Router) {
	// Public catalog. Optional auth resolves ownership flags for signed-in
	// shoppers without blocking anonymous browsing.
	public := r.PathPrefix("/api").Subrouter()
	public.Use(middleware.OptionalAuthMiddleware)

	public.HandleFunc("/games", games.CatalogHandler).Methods(http.MethodGet)
	public.HandleFunc("/games/popular", games.PopularGamesHandler).Methods(http.MethodGet)
	public.HandleFunc("/games/random", games.RandomGamesHandler).Methods(http.MethodGet)
	public.HandleFunc("/games/genre", games.GamesByGenreHandler).Methods(http.MethodGet)
	public.HandleFunc("/games/offers", games.SpecialOffersHandler).Methods(http.MethodGet)
	public.HandleFunc("/games/search", games.SearchByTitleHandler).Methods(http.MethodGet)
	public.HandleFunc("/games/{id:[0-9]+}", games.GetGameHandler).Methods(http.MethodGet)
	public.HandleFunc("/genres", games.ListGenresHandler).Methods(http.MethodGet)
	public.HandleFunc("/platforms", games.ListPlatformsHandler).Methods(http.MethodGet)
	public.HandleFunc("/tags", games.ListTagsHandler).Methods(http.MethodGet)

	// Payment provider callback authenticates with its HMAC signature, not a
	// bearer token.
	r.HandleFunc("/api/checkout/webhook", checkout.WebhookHandler).Methods(http.MethodPost)

	// Signed-in storefront surface.
	private := r.PathPrefix("/api").Subrouter()
	private.Use(middleware.AuthMiddleware)

	private.HandleFunc("/cart", cart.ViewCartHandler).Methods(http.MethodGet)
	private.HandleFunc("/cart", cart.ClearCartHandler).Methods(http.MethodDelete)
	private.HandleFunc("/cart/{gameID:[0-9]+}", cart.AddToCartHandler).Methods(http.MethodPost)
	private.HandleFunc("/cart/{gameID:[0-9]+}", cart.RemoveFromCartHandler).Methods(http.MethodDelete)

	private.HandleFunc("/checkout", checkout.CheckoutHandler).Methods(http.MethodPost)
	private.HandleFunc("/checkout/transactions", checkout.TransactionHistoryHandler).Methods(http.MethodGet)

	private.HandleFunc("/users/me", users.ProfileHandler).Methods(http.MethodGet)
	private.HandleFunc("/users/balance", users.BalanceHandler).Methods(http.MethodGet)
	private.HandleFunc("/users/library", users.LibraryHandler).Methods(http.MethodGet)
}
