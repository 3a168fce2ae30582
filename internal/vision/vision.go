// Package vision extracts candidate book metadata from cover photographs
// using a vision-capable LLM provider.
package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"bookshelf/internal/gemini"
	"bookshelf/internal/models"
	"bookshelf/internal/ollama"
	"bookshelf/internal/openai"
	"bookshelf/internal/providers"
)

// coverPrompt is the fixed instruction sent with every cover image. The model
// must answer with exactly these keys and leave fields empty rather than guess.
const coverPrompt = `You are an assistant for a personal library system.
Your task is to read the cover of a book (if one is visible) and return structured data.

IMPORTANT INSTRUCTIONS:
- If you are not sure, leave the field empty instead of guessing.
- Do NOT invent data. If a field is not clearly visible in the image, leave it as an empty string.
- Respond ONLY with a valid JSON object, no extra text.
- If several authors appear, use only the main author (the most prominent on the cover).
- Do not translate anything: write the title and the author exactly as they appear on the cover.

Exact structure:
{
  "titulo": string,
  "autor": string,
  "isbn": string
}`

// Client reads book covers through a single LLM provider.
type Client struct {
	provider providers.Provider
	model    string
}

// New returns a Client backed by the given provider and model.
func New(provider providers.Provider, model string) *Client {
	return &Client{provider: provider, model: model}
}

// ForProvider builds a Client for the named provider, falling back to the
// provider's default model when model is empty.
func ForProvider(name, model string) (*Client, error) {
	if model == "" {
		model = defaultModel(name)
	}

	switch name {
	case "openai":
		return New(openai.New(), model), nil
	case "ollama":
		return New(ollama.New(), model), nil
	case "gemini":
		return New(gemini.New(), model), nil
	default:
		return nil, fmt.Errorf("unsupported vision provider: %s", name)
	}
}

func defaultModel(provider string) string {
	switch provider {
	case "openai":
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			return "gpt-4.1-mini"
		}
		return model
	case "ollama":
		model := os.Getenv("OLLAMA_MODEL")
		if model == "" {
			return "mistral-small3.2:24b"
		}
		return model
	case "gemini":
		model := os.Getenv("GEMINI_MODEL")
		if model == "" {
			return "gemini-1.5-flash"
		}
		return model
	default:
		return ""
	}
}

// ExtractFromCover sends the image to the provider with the fixed cover
// instruction and parses the response into a candidate record. A response
// that is not the expected JSON object yields (nil, nil): the model violating
// its output contract is a recoverable condition, not a transport failure.
// The isbn field has hyphens stripped but is not length-validated here.
func (c *Client) ExtractFromCover(ctx context.Context, image []byte) (*models.CandidateRecord, error) {
	response, err := c.provider.ExtractText(ctx, providers.Config{
		Model:       c.model,
		Temperature: 0,
		Prompt:      coverPrompt,
		Image:       image,
	})
	if err != nil {
		return nil, fmt.Errorf("vision provider call failed: %w", err)
	}

	var fields struct {
		Titulo string `json:"titulo"`
		Autor  string `json:"autor"`
		ISBN   string `json:"isbn"`
	}
	if err := json.Unmarshal([]byte(trimCodeFences(response)), &fields); err != nil {
		slog.Warn("vision response is not valid JSON", "err", err, "length", len(response))
		return nil, nil
	}

	return &models.CandidateRecord{
		Title:  strings.TrimSpace(fields.Titulo),
		Author: strings.TrimSpace(fields.Autor),
		ISBN:   strings.TrimSpace(strings.ReplaceAll(fields.ISBN, "-", "")),
	}, nil
}

// trimCodeFences strips markdown code blocks some models wrap around JSON.
func trimCodeFences(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}
