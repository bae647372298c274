package ai

import (
	"context"
	"os"
	"time"

	"github.com/myrjola/deepinsight/internal/envstruct"
	"github.com/myrjola/deepinsight/internal/errors"
	"github.com/sashabaranov/go-openai"
)

// Completer is the narrow text-generation contract the interview engine
// consumes. Tests substitute a scripted implementation.
type Completer interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (openai.ChatCompletionResponse, error)
}

// Config holds the environment-sourced settings for the text-generation
// gateway. The base URL allows pointing the client at OpenAI-compatible
// routers.
type Config struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:""`
	Model   string `env:"INTERVIEW_MODEL" envDefault:"gpt-4o-mini"`
}

type Client struct {
	client *openai.Client
	model  string
	// timeout bounds a single gateway call independently of any deadline the
	// caller carries. A hung call must not consume an orchestrator's whole
	// budget.
	timeout time.Duration
}

const (
	MaxTokens      = 1024
	defaultTimeout = 30 * time.Second
)

// NewClient constructs a client from the given configuration.
func NewClient(cfg Config) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &Client{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		timeout: defaultTimeout,
	}
}

// NewClientFromEnv constructs a client configured from the environment.
func NewClientFromEnv() (*Client, error) {
	var cfg Config
	if err := envstruct.Populate(&cfg, os.LookupEnv); err != nil {
		return nil, errors.Wrap(err, "populate AI config")
	}
	return NewClient(cfg), nil
}

func (c *Client) Complete(
	ctx context.Context,
	messages []openai.ChatCompletionMessage,
) (openai.ChatCompletionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     c.model,
			MaxTokens: MaxTokens,
			Messages:  messages,
		},
	)
	if err != nil {
		return openai.ChatCompletionResponse{}, errors.Wrap(err, "create chat completion")
	}
	return completion, nil
}
