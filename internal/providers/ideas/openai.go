package ideas

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// ChatClient is the slice of the LLM surface the generator needs. The real
// implementation is OpenAIChat; tests substitute a canned one.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIChat implements ChatClient using the official openai-go SDK with the
// JSON-object response format so the payload parses without prose cleanup.
type OpenAIChat struct {
	model string
	opts  []option.RequestOption
}

// OpenAIOptions configures the chat client.
type OpenAIOptions struct {
	APIKey  string
	Model   string
	BaseURL string
}

func NewOpenAIChat(opts OpenAIOptions) (*OpenAIChat, error) {
	if opts.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	model := opts.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	return &OpenAIChat{model: model, opts: reqOpts}, nil
}

func (c *OpenAIChat) Complete(ctx context.Context, system, user string) (string, error) {
	client := openai.NewClient(c.opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(0.8),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ ChatClient = (*OpenAIChat)(nil)
