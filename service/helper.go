package service

import "fmt"

var Examples = []string{
	"Explain the concept of cloud computing in simple terms.",
	"Write Python code to list files in a directory.",
	"What are the main benefits of using Generative AI?",
	"Translate 'Cloud computing offers scalability' to German.",
}

const Description = "This demo sends your text to a remote server for processing."

// Presentation holds the labels shared by the web form and the bot.
type Presentation struct {
	Title       string
	Description string
	InputLabel  string
	Placeholder string
	OutputLabel string
	Examples    []string
}

func (s *Service) Presentation() Presentation {
	label := s.Config.ModelLabel
	return Presentation{
		Title:       fmt.Sprintf("Chat with %s via Inference API", label),
		Description: Description,
		InputLabel:  "Enter your prompt",
		Placeholder: "Type your question or instruction here...",
		OutputLabel: fmt.Sprintf("%s Says (via API):", label),
		Examples:    Examples,
	}
}

// Example returns the example at index i, or false when out of range.
func Example(i int) (string, bool) {
	if i < 0 || i >= len(Examples) {
		return "", false
	}
	return Examples[i], true
}
