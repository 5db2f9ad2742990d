package routes

import (
	"github.com/agriassist/agriassist-llm-server/http_server/controllers"
	"github.com/agriassist/agriassist-llm-server/service"
	"github.com/gorilla/mux"
)

func APIRoute(router *mux.Router, s service.Service) {
	router.HandleFunc("/api/generate", controllers.Generate(s)).Methods("POST")
	router.HandleFunc("/healthz", controllers.Health(s)).Methods("GET")
}
