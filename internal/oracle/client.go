package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"fitquest/internal/engine"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls an OpenAI-compatible chat-completions endpoint and parses the
// reply against the strict quest schema.
type Client struct {
	httpClient HTTPClient
	url        string
	apiKey     string
	model      string
	logger     *slog.Logger
}

func NewClient(httpClient HTTPClient, url, apiKey, model string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: httpClient,
		url:        url,
		apiKey:     apiKey,
		model:      model,
		logger:     logger,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// questBatch is the contract the model must answer with.
type questBatch struct {
	Quests []questDef `json:"quests"`
}

type questDef struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	XPReward    int     `json:"xpReward"`
	Kind        string  `json:"kind"`
	Goal        float64 `json:"goal"`
}

func (c *Client) GenerateQuests(ctx context.Context, profile Profile) ([]engine.Quest, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(profile)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("oracle request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("oracle returned non-200", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(data, &chat); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", ErrBadPayload)
	}

	quests, err := ParseQuestBatch(chat.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("oracle generated quests", "count", len(quests), "level", profile.Level)
	return quests, nil
}

// ParseQuestBatch validates a model reply against the quest schema. Any
// violation fails the whole batch.
func ParseQuestBatch(content string) ([]engine.Quest, error) {
	content = strings.TrimSpace(content)
	// Models routinely wrap JSON in a markdown fence; strip exactly that.
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	dec := json.NewDecoder(strings.NewReader(content))
	var batch questBatch
	if err := dec.Decode(&batch); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	if len(batch.Quests) == 0 {
		return nil, fmt.Errorf("%w: no quests", ErrBadPayload)
	}

	seen := make(map[string]bool, len(batch.Quests))
	quests := make([]engine.Quest, 0, len(batch.Quests))
	for i, def := range batch.Quests {
		id := strings.TrimSpace(def.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: quest %d has no id", ErrBadPayload, i)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate quest id %q", ErrBadPayload, id)
		}
		seen[id] = true
		if strings.TrimSpace(def.Title) == "" {
			return nil, fmt.Errorf("%w: quest %q has no title", ErrBadPayload, id)
		}
		kind, ok := engine.ParseQuestKind(def.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: quest %q has kind %q", ErrBadPayload, id, def.Kind)
		}
		if def.Goal <= 0 {
			return nil, fmt.Errorf("%w: quest %q has goal %v", ErrBadPayload, id, def.Goal)
		}
		if def.XPReward < 0 {
			return nil, fmt.Errorf("%w: quest %q has negative reward", ErrBadPayload, id)
		}
		quests = append(quests, engine.Quest{
			ID:          id,
			Title:       def.Title,
			Description: def.Description,
			XPReward:    def.XPReward,
			Kind:        kind,
			Goal:        def.Goal,
		})
	}
	return quests, nil
}
