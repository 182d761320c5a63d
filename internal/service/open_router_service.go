package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/skill-assessment/internal/assessment"
	"github.com/fadilmartias/skill-assessment/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const openRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterService implements assessment.Gateway via the OpenRouter
// chat-completions API, as an alternative to the Gemini backend.
type OpenRouterService struct {
	APIKey string
	Model  string
	client *resty.Client
}

func NewOpenRouterService() *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	return &OpenRouterService{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		client: resty.New().SetTimeout(90 * time.Second),
	}
}

func (s *OpenRouterService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post(openRouterEndpoint)
	if err != nil {
		return "", &assessment.GatewayError{
			Op:      "complete",
			Timeout: errors.Is(err, context.DeadlineExceeded),
			Err:     err,
		}
	}

	if resp.StatusCode() >= 400 {
		return "", &assessment.GatewayError{
			Op:  "complete",
			Err: fmt.Errorf("openrouter returned %d: %s", resp.StatusCode(), resp.String()),
		}
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", &assessment.GatewayError{Op: "complete", Err: fmt.Errorf("no response from LLM")}
	}
	return text, nil
}
