package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

const RoleUser = "user"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the OpenAI-style chat-completion body. Temperature and TopP
// are omitted unless configured.
type ChatRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature *float64  `json:"temperature,omitempty"`
	TopP        *float64  `json:"top_p,omitempty"`
}

// ChatResponse keeps the choices raw so that only the first one is ever
// decoded. Malformed later choices or unknown fields cannot fail the call.
type ChatResponse struct {
	Choices []json.RawMessage `json:"choices"`
}

type Choice struct {
	Message *ChoiceMessage `json:"message"`
}

// ChoiceMessage keeps Content as a pointer so a missing field can be told
// apart from an empty reply.
type ChoiceMessage struct {
	Content *string `json:"content"`
}

// FirstContent returns choices[0].message.content. It fails when there is no
// first choice or it has no string content.
func (r *ChatResponse) FirstContent() (string, error) {
	if len(r.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	var choice Choice
	if err := json.Unmarshal(r.Choices[0], &choice); err != nil {
		return "", fmt.Errorf("choices[0]: %w", err)
	}
	if choice.Message == nil || choice.Message.Content == nil {
		return "", errors.New("no choices[0].message.content in response")
	}
	return *choice.Message.Content, nil
}
