package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/agriassist/agriassist-llm-server/service"
	"github.com/thedevsaddam/govalidator"
)

type formPage struct {
	service.Presentation
	Prompt   string
	Output   string
	Errors   []string
	Flagging bool
	Flagged  bool
}

func newFormPage(s service.Service) formPage {
	return formPage{Presentation: s.Presentation(), Flagging: s.Config.FlaggingEnabled()}
}

// ShowForm renders the empty form. ?example=N prefills the prompt.
func ShowForm(s service.Service) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		page := newFormPage(s)
		if raw := r.URL.Query().Get("example"); raw != "" {
			i, err := strconv.Atoi(raw)
			example, ok := service.Example(i)
			if err != nil || !ok {
				page.Errors = []string{"Unknown example " + raw}
				renderHTML(rw, http.StatusBadRequest, "form.html", page)
				return
			}
			page.Prompt = example
		}
		renderHTML(rw, http.StatusOK, "form.html", page)
	}
}

// SubmitForm runs the prompt through the inference client and renders the
// result in the output box.
func SubmitForm(s service.Service) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			ReturnHttpBadResponse(rw, "Invalid form: "+err.Error())
			return
		}
		rules := govalidator.MapData{
			"prompt": []string{"required"},
		}
		opts := govalidator.Options{
			Request: r,
			Rules:   rules,
		}
		e := govalidator.New(opts).Validate()

		page := newFormPage(s)
		page.Prompt = r.Form.Get("prompt")
		if len(e) != 0 {
			for _, msgs := range e {
				page.Errors = append(page.Errors, msgs...)
			}
			renderHTML(rw, http.StatusBadRequest, "form.html", page)
			return
		}

		maxNewTokens := 0
		if raw := strings.TrimSpace(r.Form.Get("max_new_tokens")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				page.Errors = []string{"max_new_tokens must be a positive integer"}
				renderHTML(rw, http.StatusBadRequest, "form.html", page)
				return
			}
			maxNewTokens = n
		}

		result := s.GenerateResponse(r.Context(), page.Prompt, maxNewTokens)
		page.Output = result.Display()
		renderHTML(rw, http.StatusOK, "form.html", page)
	}
}
