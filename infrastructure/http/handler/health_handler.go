package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterHealthRoutes(router *mux.Router) {
	router.HandleFunc("/health", Health).Methods(http.MethodGet)
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
