package routes

import (
	"github.com/agriassist/agriassist-llm-server/http_server/controllers"
	"github.com/agriassist/agriassist-llm-server/service"
	"github.com/gorilla/mux"
)

// FlagRoute is only mounted when flagging is set to manual.
func FlagRoute(router *mux.Router, s service.Service) {
	router.HandleFunc("/flag", controllers.FlagExchange(s)).Methods("POST")
	router.HandleFunc("/flags", controllers.ListFlags(s)).Methods("GET")
}
