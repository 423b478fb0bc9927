// File: internal/infra/adapters/classifier/gemini.go
package classifier

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/domain/ports/adapter"
)

var _ adapter.ReceiptClassifier = (*GeminiClassifier)(nil)

// GeminiClassifier inspects receipt screenshots with Gemini vision, asking
// for a strict JSON judgment via a response schema.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

func NewGeminiClassifier(ctx context.Context, apiKey, baseURL, modelName string) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClassifier{client: c, model: modelName}, nil
}

func (g *GeminiClassifier) Name() string { return "gemini" }

func (g *GeminiClassifier) Classify(ctx context.Context, image []byte, expectedAmount int64) (model.ClassifierJudgment, error) {
	if len(image) == 0 {
		return model.ClassifierJudgment{}, errors.New("gemini: empty image")
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: fmt.Sprintf(receiptPrompt, expectedAmount)},
			{InlineData: &genai.Blob{MIMEType: imageMIME(image), Data: image}},
		},
	}}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"verified":       {Type: genai.TypeBoolean},
				"detectedAmount": {Type: genai.TypeNumber},
				"provider":       {Type: genai.TypeString},
				"reason":         {Type: genai.TypeString},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return model.ClassifierJudgment{}, fmt.Errorf("gemini: generate: %w", err)
	}

	// Extract text
	text := ""
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil && len(resp.Candidates[0].Content.Parts) > 0 {
		if t := resp.Candidates[0].Content.Parts[0].Text; t != "" {
			text = t
		}
	}
	if text == "" {
		return model.ClassifierJudgment{}, errors.New("gemini: empty response")
	}
	return parseJudgment(text)
}
