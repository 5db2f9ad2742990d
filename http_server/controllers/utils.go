package controllers

import (
	"embed"
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"ago": humanize.Time,
}).ParseFS(templateFS, "templates/*.html"))

func ReturnHttpBadResponse(rw http.ResponseWriter, response string) {
	writeJSON(rw, http.StatusBadRequest, response)
	log.Println(response)
}

func writeJSON(rw http.ResponseWriter, status int, payload interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(payload); err != nil {
		log.Printf("writeJSON failed, error: %s\n", err.Error())
	}
}

func renderHTML(rw http.ResponseWriter, status int, name string, data interface{}) {
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(status)
	if err := templates.ExecuteTemplate(rw, name, data); err != nil {
		log.Printf("render %s failed, error: %s\n", name, err.Error())
	}
}
