package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/agriassist/agriassist-llm-server/models"
	"github.com/agriassist/agriassist-llm-server/service"
	"github.com/thedevsaddam/govalidator"
)

const defaultFlagLimit = 50

// FlagExchange stores the prompt/output pair currently shown in the form.
func FlagExchange(s service.Service) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			ReturnHttpBadResponse(rw, "Invalid form: "+err.Error())
			return
		}
		rules := govalidator.MapData{
			"prompt": []string{"required"},
			"output": []string{"required"},
		}
		e := govalidator.New(govalidator.Options{Request: r, Rules: rules}).Validate()

		page := newFormPage(s)
		page.Prompt = r.Form.Get("prompt")
		page.Output = r.Form.Get("output")
		if len(e) != 0 {
			for _, msgs := range e {
				page.Errors = append(page.Errors, msgs...)
			}
			renderHTML(rw, http.StatusBadRequest, "form.html", page)
			return
		}

		_, err := s.SaveFlag(page.Prompt, page.Output, r.Form.Get("label"))
		switch {
		case errors.Is(err, service.ErrEmptyFlag):
			page.Errors = []string{err.Error()}
			renderHTML(rw, http.StatusBadRequest, "form.html", page)
			return
		case err != nil:
			log.Printf("FlagExchange failed, error: %s\n", err.Error())
			page.Errors = []string{"Could not save flag"}
			renderHTML(rw, http.StatusInternalServerError, "form.html", page)
			return
		}
		page.Flagged = true
		renderHTML(rw, http.StatusOK, "form.html", page)
	}
}

type flagsPage struct {
	service.Presentation
	Flags []models.Flag
}

func ListFlags(s service.Service) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		limit := defaultFlagLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		flags, err := s.RecentFlags(limit)
		if err != nil {
			log.Printf("ListFlags failed, error: %s\n", err.Error())
			http.Error(rw, "could not list flags", http.StatusInternalServerError)
			return
		}
		renderHTML(rw, http.StatusOK, "flags.html", flagsPage{Presentation: s.Presentation(), Flags: flags})
	}
}
