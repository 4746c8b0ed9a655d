// Package llm adapts the Anthropic Messages API to the enrichment
// service's text and structured-output contract, adding a per-attempt
// timeout and bounded exponential retry.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sethvargo/go-retry"

	"github.com/heartmarshall/langarchive/internal/config"
	"github.com/heartmarshall/langarchive/internal/domain"
)

type messagesAPI interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Client calls the model. A Client without credentials fails every call
// with domain.ErrUpstreamUnavailable.
type Client struct {
	messages   messagesAPI
	model      string
	maxTokens  int64
	timeout    time.Duration
	maxRetries uint64
	retryBase  time.Duration
	log        *slog.Logger
}

// New builds a Client from configuration. The SDK's own retries are
// disabled; Client applies its own policy.
func New(cfg config.AIConfig, logger *slog.Logger) *Client {
	var api messagesAPI
	if cfg.APIKey != "" {
		opts := []option.RequestOption{
			option.WithAPIKey(cfg.APIKey),
			option.WithMaxRetries(0),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
		client := anthropic.NewClient(opts...)
		api = &client.Messages
	}
	return NewWithAPI(api, cfg, logger)
}

// NewWithAPI builds a Client around an existing messages API.
func NewWithAPI(api messagesAPI, cfg config.AIConfig, logger *slog.Logger) *Client {
	return &Client{
		messages:   api,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryBase:  cfg.RetryBase,
		log:        logger.With("adapter", "llm"),
	}
}

// Configured reports whether the client has credentials.
func (c *Client) Configured() bool { return c.messages != nil }

// GenerateText sends prompt and returns the concatenated text of the reply.
// A reply without text blocks yields an empty string, not an error.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	msg, err := c.call(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	return textOf(msg), nil
}

// GenerateJSON forces the model to answer through a single tool whose input
// schema is schema, and returns the raw tool input. When the model answers
// with text instead, the text is returned for the caller to validate.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema domain.OutputSchema) (json.RawMessage, error) {
	tool := anthropic.ToolParam{
		Name:        schema.Name,
		Description: anthropic.String(schema.Description),
		InputSchema: anthropic.ToolInputSchemaParam{
			Properties: schema.Properties,
			Required:   schema.Required,
		},
	}

	msg, err := c.call(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Tools:      []anthropic.ToolUnionParam{{OfTool: &tool}},
		ToolChoice: anthropic.ToolChoiceParamOfTool(schema.Name),
	})
	if err != nil {
		return nil, err
	}

	for _, block := range msg.Content {
		if block.Type == "tool_use" && block.Name == schema.Name {
			return block.Input, nil
		}
	}

	text := strings.TrimSpace(textOf(msg))
	if text == "" {
		return nil, fmt.Errorf("%w: no tool output", domain.ErrUpstreamMalformed)
	}
	return json.RawMessage(text), nil
}

func (c *Client) call(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	if c.messages == nil {
		return nil, fmt.Errorf("%w: ai api key is not configured", domain.ErrUpstreamUnavailable)
	}

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBase))

	var (
		msg     *anthropic.Message
		attempt int
	)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		start := time.Now()
		out, err := c.messages.New(attemptCtx, params)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.WarnContext(ctx, "ai call failed",
				slog.Int("attempt", attempt),
				slog.Duration("duration", time.Since(start)),
				slog.String("error", err.Error()),
			)
			if isRetryable(err) {
				return retry.RetryableError(err)
			}
			return err
		}

		msg = out
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	return msg, nil
}

// isRetryable reports whether a failed call may succeed on a later attempt:
// rate limiting, server errors, timeouts and transport failures.
func isRetryable(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

func textOf(msg *anthropic.Message) string {
	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String()
}
