// File: internal/infra/adapters/classifier/openai.go
package classifier

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/domain/ports/adapter"
)

var _ adapter.ReceiptClassifier = (*OpenAIClassifier)(nil)

// OpenAIClassifier runs the same receipt check against an OpenAI-compatible
// vision endpoint. Base URL is configurable so OpenAI-compatible gateways
// work unchanged.
type OpenAIClassifier struct {
	client openai.Client
	model  string
}

func NewOpenAIClassifier(apiKey, baseURL, modelName string) (*OpenAIClassifier, error) {
	if apiKey == "" {
		return nil, errors.New("openai: empty api key")
	}
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClassifier{client: openai.NewClient(opts...), model: modelName}, nil
}

func (o *OpenAIClassifier) Name() string { return "openai" }

func (o *OpenAIClassifier) Classify(ctx context.Context, image []byte, expectedAmount int64) (model.ClassifierJudgment, error) {
	if len(image) == 0 {
		return model.ClassifierJudgment{}, errors.New("openai: empty image")
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", imageMIME(image), base64.StdEncoding.EncodeToString(image))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(fmt.Sprintf(receiptPrompt, expectedAmount)),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
			}),
		},
	})
	if err != nil {
		return model.ClassifierJudgment{}, fmt.Errorf("openai: chat: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return model.ClassifierJudgment{}, errors.New("openai: empty response")
	}
	return parseJudgment(resp.Choices[0].Message.Content)
}
