package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/agriassist/agriassist-llm-server/models"
	"github.com/dustin/go-humanize"
)

// StatusError is returned for 4xx and 5xx responses.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	class := "Client"
	if e.Code >= 500 {
		class = "Server"
	}
	return fmt.Sprintf("%d %s Error: %s for url: %s", e.Code, class, http.StatusText(e.Code), e.URL)
}

// BuildRequest returns the chat-completion body for a single user prompt.
func (s *Service) BuildRequest(prompt string, maxNewTokens int) models.ChatRequest {
	if maxNewTokens <= 0 {
		maxNewTokens = s.Config.MaxNewTokens
	}
	return models.ChatRequest{
		Messages:    []models.Message{{Role: models.RoleUser, Content: prompt}},
		Model:       s.Config.ModelID,
		MaxTokens:   maxNewTokens,
		Temperature: s.Config.Temperature,
		TopP:        s.Config.TopP,
	}
}

// GenerateResponse sends prompt to the configured endpoint and returns the
// first choice's content. It never panics and never returns an empty failure:
// every error ends up in Result.Failure.
func (s *Service) GenerateResponse(ctx context.Context, prompt string, maxNewTokens int) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("An unexpected error occurred: %v\n", r)
			result = Fail(FailureUnexpected, fmt.Sprint(r), "")
		}
	}()

	log.Printf("Received prompt: %s\n", prompt)
	log.Println("Preparing payload for API...")
	rs, err := json.Marshal(s.BuildRequest(prompt, maxNewTokens))
	if err != nil {
		log.Printf("An unexpected error occurred: %v\n", err)
		return Fail(FailureUnexpected, err.Error(), "")
	}

	log.Printf("Sending request to API for model %s...\n", s.Config.ModelLabel)
	resp, err := s.Client.R().
		SetContext(ctx).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", s.Config.Token)).
		SetHeader("Content-Type", "application/json").
		SetBody(rs).
		Post(s.Config.APIURL)
	if err != nil {
		log.Printf("Error calling Hugging Face API: %v\n", err)
		return Fail(FailureTransport, err.Error(), "")
	}

	body := resp.Body()
	if resp.IsError() {
		statusErr := &StatusError{Code: resp.StatusCode(), URL: s.Config.APIURL}
		detail := errorDetail(body)
		log.Printf("Error calling Hugging Face API: %v\nResponse details: %s\n", statusErr, detail)
		return Fail(FailureTransport, statusErr.Error(), detail)
	}

	if !json.Valid(body) {
		err := fmt.Errorf("response is not valid JSON: %q", string(body))
		log.Printf("An unexpected error occurred: %v\n", err)
		return Fail(FailureUnexpected, err.Error(), string(body))
	}
	log.Printf("API Response Received Successfully (%s in %v).\n", humanize.Bytes(uint64(len(body))), resp.Time())

	var rsp models.ChatResponse
	if err := json.Unmarshal(body, &rsp); err != nil {
		log.Printf("Unexpected API response structure: %s\n", body)
		return Fail(FailureResponseShape, err.Error(), string(body))
	}
	content, err := rsp.FirstContent()
	if err != nil {
		log.Printf("Unexpected API response structure: %s\n", body)
		return Fail(FailureResponseShape, err.Error(), string(body))
	}
	log.Printf("API generated content: %s\n", content)
	return Success(content)
}

// errorDetail compacts a JSON error body, falling back to the raw text.
func errorDetail(body []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err == nil {
		return buf.String()
	}
	return string(body)
}
