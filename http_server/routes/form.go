package routes

import (
	"github.com/agriassist/agriassist-llm-server/http_server/controllers"
	"github.com/agriassist/agriassist-llm-server/service"
	"github.com/gorilla/mux"
)

func FormRoute(router *mux.Router, s service.Service) {
	router.HandleFunc("/", controllers.ShowForm(s)).Methods("GET")
	router.HandleFunc("/", controllers.SubmitForm(s)).Methods("POST")
}
