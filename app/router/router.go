package router

import (
	"net/http"

	"sole-and-ankle/app/controller"
)

type Controllers struct {
	Card *controller.CardController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes builds the route table and wraps it in the request middleware
func SetupRoutes(controllers *Controllers) http.Handler {
	mux := http.NewServeMux()

	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Single card: json, html, png, pdf
	mux.HandleFunc("/cards/render", controllers.Card.RenderCard)

	// Page of cards: html, json
	mux.HandleFunc("/cards/grid", controllers.Card.RenderGrid)

	return withRequestID(withAccessLog(mux))
}
