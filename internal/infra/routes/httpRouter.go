package routes

import (
	"encoding/json"
	"lead-connector/internal/infra/handlers"
	"net/http"

	"github.com/gorilla/mux"
)

type Routes struct {
	Mux             *mux.Router
	SessionHandlers *handlers.SessionHandlers
}

func NewRoutes(mux *mux.Router, sessionHandlers *handlers.SessionHandlers) *Routes {
	return &Routes{mux, sessionHandlers}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/api/telegram-session", r.SessionHandlers.TelegramSession).Methods(http.MethodPost)

	r.Mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Bot Telegram + Meta CAPI funcionando ✅"))
	}).Methods(http.MethodGet)

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
}
