// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ollama

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/scopegate/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const probeTimeout = 5 * time.Second

// Completer implements ai.Completer against an Ollama server.
// Every call is preceded by a liveness probe of the version endpoint, since a
// local inference backend may be down or still loading its model.
type Completer struct {
	client         llms.Model
	host           string
	requestTimeout time.Duration
	probeClient    *http.Client
	logger         *slog.Logger
}

// newCompleter is an internal constructor that returns the concrete type.
func newCompleter(config *ai.Config) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := ollama.New(
		ollama.WithServerURL(config.CompletionHost),
		ollama.WithModel(config.CompletionModel),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client:         client,
		host:           config.CompletionHost,
		requestTimeout: config.RequestTimeout,
		probeClient:    &http.Client{Timeout: probeTimeout},
		logger:         slog.Default().With("component", "ollama-completer"),
	}, nil
}

// NewCompleter creates a new completer using the provided configuration.
//
// Returns ai.Completer interface to enforce abstraction.
func NewCompleter(config *ai.Config) (ai.Completer, error) {
	return newCompleter(config)
}

// probe checks the Ollama version endpoint before issuing a generate call.
func (c *Completer) probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/version", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ai.ErrServiceUnavailable, err)
	}
	resp, err := c.probeClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ai.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: version endpoint returned %d", ai.ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}

// Complete sends the prompts to Ollama and returns the generated text.
func (c *Completer) Complete(ctx context.Context, systemPrompt, userPrompt string, opts *ai.CompletionOptions) (string, error) {
	if opts == nil {
		opts = ai.DefaultCompletionOptions()
	}

	if err := c.probe(ctx); err != nil {
		c.logger.Error("completion service not accessible", "host", c.host, "err", err)
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(userPrompt)},
		},
	}

	response, err := c.client.GenerateContent(ctx, content,
		llms.WithTemperature(opts.Temperature),
		llms.WithTopK(opts.TopK),
		llms.WithTopP(opts.TopP),
		llms.WithMaxTokens(opts.MaxTokens),
	)
	if err != nil {
		c.logger.Error("failed to generate completion", "err", err)
		return "", fmt.Errorf("%w: %v", ai.ErrServiceUnavailable, err)
	}

	if len(response.Choices) < 1 {
		c.logger.Warn("no choices returned from model")
		return "", ai.ErrMalformedResponse
	}

	text := strings.TrimSpace(response.Choices[0].Content)
	if text == "" {
		return "", ai.ErrMalformedResponse
	}
	return text, nil
}
