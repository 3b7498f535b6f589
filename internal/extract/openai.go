package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/rcliao/wordbook/internal/model"
)

// ErrBadResponse is returned when the model reply is not a JSON word list.
var ErrBadResponse = errors.New("extract: unexpected model response")

// Extractor pulls vocabulary words out of free text.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]model.Word, error)
}

// OpenAIConfig configures OpenAIExtractor. Any OpenAI-compatible endpoint works.
type OpenAIConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	ChunkSize int
}

// OpenAIExtractor asks a chat model for a JSON list of words with phonetics
// and definitions.
type OpenAIExtractor struct {
	client    *openai.Client
	model     string
	chunkSize int
}

// NewOpenAIExtractor creates an extractor. Empty model and chunk size get defaults.
func NewOpenAIExtractor(cfg OpenAIConfig) *OpenAIExtractor {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	size := cfg.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &OpenAIExtractor{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     model,
		chunkSize: size,
	}
}

const extractPrompt = `You extract vocabulary for a language learner.
From the user's text, list the words worth studying: uncommon, advanced or domain-specific words.
Use the dictionary form of each word.
Reply with JSON only, an array of objects: [{"text": "...", "phonetic": "IPA", "definition": "short definition"}].
Reply with [] when nothing qualifies.`

// Extract sends each chunk of text once and merges the results, dropping
// repeated words.
func (x *OpenAIExtractor) Extract(ctx context.Context, text string) ([]model.Word, error) {
	var all []model.Word
	for i, chunk := range Chunk(text, x.chunkSize) {
		words, err := x.extractChunk(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i+1, err)
		}
		slog.Debug("chunk extracted", "chunk", i+1, "chars", len(chunk), "words", len(words))
		all = append(all, words...)
	}
	return Dedupe(all), nil
}

func (x *OpenAIExtractor) extractChunk(ctx context.Context, chunk string) ([]model.Word, error) {
	resp, err := x.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: x.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractPrompt},
			{Role: openai.ChatMessageRoleUser, Content: chunk},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ErrBadResponse)
	}
	return parseReply(resp.Choices[0].Message.Content)
}

// parseReply decodes the model's JSON array, tolerating a markdown code fence
// around it.
func parseReply(content string) ([]model.Word, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON array", ErrBadResponse)
	}

	var entries []entry
	if err := json.Unmarshal([]byte(content[start:end+1]), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	words := make([]model.Word, 0, len(entries))
	for _, e := range entries {
		if w := e.word(); w.Text != "" {
			words = append(words, w)
		}
	}
	return words, nil
}
