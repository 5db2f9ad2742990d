package controllers

import (
	"net/http"

	"github.com/agriassist/agriassist-llm-server/service"
	"github.com/thedevsaddam/govalidator"
)

type GenerateSerializer struct {
	Prompt       string `json:"prompt"`
	MaxNewTokens int    `json:"max_new_tokens"`
}

type GenerateResponse struct {
	Success   bool   `json:"success"`
	Output    string `json:"output"`
	ErrorKind string `json:"error_kind,omitempty"`
}

func Generate(s service.Service) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		// parse request body
		var generateSerializer GenerateSerializer
		rules := govalidator.MapData{
			"prompt": []string{"required"},
		}
		opts := govalidator.Options{
			Request: r,
			Data:    &generateSerializer,
			Rules:   rules,
		}
		e := govalidator.New(opts).ValidateJSON()
		// 1.0 if body of request is not valid
		if len(e) != 0 {
			writeJSON(rw, http.StatusBadRequest, map[string]interface{}{"validationError": e})
			return
		}
		if generateSerializer.MaxNewTokens < 0 {
			ReturnHttpBadResponse(rw, "max_new_tokens must be a positive integer")
			return
		}

		// 2.0 call the model; failures are still a 200 with a displayable output
		result := s.GenerateResponse(r.Context(), generateSerializer.Prompt, generateSerializer.MaxNewTokens)
		response := GenerateResponse{Success: result.OK(), Output: result.Display()}
		if !result.OK() {
			response.ErrorKind = result.Failure.Kind.String()
		}
		writeJSON(rw, http.StatusOK, response)
	}
}

func Health(s service.Service) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		writeJSON(rw, http.StatusOK, map[string]string{
			"status": "ok",
			"model":  s.Config.ModelID,
		})
	}
}
