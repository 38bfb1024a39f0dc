package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitquest/internal/engine"
)

func chatReply(t *testing.T, content string) string {
	t.Helper()
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
	data, err := json.Marshal(reply)
	require.NoError(t, err)
	return string(data)
}

const validBatch = `{"quests": [
	{"id": "pushups", "title": "Push-ups", "description": "Do them.", "xpReward": 40, "kind": "static", "goal": 20},
	{"id": "run", "title": "Morning run", "description": "Outside.", "xpReward": 90, "kind": "distance", "goal": 3.5}
]}`

func TestGenerateQuests(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "level 3")
		assert.Contains(t, req.Messages[1].Content, "rank C")

		_, _ = w.Write([]byte(chatReply(t, validBatch)))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "secret", "test-model", nil)
	quests, err := client.GenerateQuests(context.Background(), Profile{
		Name: "Jinwoo", Level: 3, Rank: engine.RankC, Count: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)

	require.Len(t, quests, 2)
	assert.Equal(t, "pushups", quests[0].ID)
	assert.Equal(t, engine.KindStatic, quests[0].Kind)
	assert.Equal(t, engine.KindDistance, quests[1].Kind)
	assert.InDelta(t, 3.5, quests[1].Goal, 1e-9)
	assert.Zero(t, quests[0].Progress)
}

func TestGenerateQuestsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "", "m", nil)
	_, err := client.GenerateQuests(context.Background(), Profile{Name: "X", Level: 1, Rank: engine.RankE})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestGenerateQuestsMalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chatReply(t, `Sure! Here are some quests for you :)`)))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "", "m", nil)
	_, err := client.GenerateQuests(context.Background(), Profile{Name: "X", Level: 1, Rank: engine.RankE})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadPayload))
}

func TestParseQuestBatchStrictness(t *testing.T) {
	cases := map[string]string{
		"empty batch":       `{"quests": []}`,
		"missing id":        `{"quests": [{"title": "A", "kind": "static", "goal": 5, "xpReward": 1}]}`,
		"missing title":     `{"quests": [{"id": "a", "kind": "static", "goal": 5, "xpReward": 1}]}`,
		"bad kind":          `{"quests": [{"id": "a", "title": "A", "kind": "sprint", "goal": 5, "xpReward": 1}]}`,
		"zero goal":         `{"quests": [{"id": "a", "title": "A", "kind": "static", "goal": 0, "xpReward": 1}]}`,
		"negative reward":   `{"quests": [{"id": "a", "title": "A", "kind": "static", "goal": 5, "xpReward": -1}]}`,
		"duplicate ids":     `{"quests": [{"id": "a", "title": "A", "kind": "static", "goal": 5, "xpReward": 1}, {"id": "a", "title": "B", "kind": "static", "goal": 5, "xpReward": 1}]}`,
		"not json":          `quests: pushups`,
		"array at top":      `[{"id": "a", "title": "A", "kind": "static", "goal": 5, "xpReward": 1}]`,
	}
	for name, content := range cases {
		_, err := ParseQuestBatch(content)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrBadPayload), name)
	}
}

func TestParseQuestBatchStripsFence(t *testing.T) {
	quests, err := ParseQuestBatch("```json\n" + validBatch + "\n```")
	require.NoError(t, err)
	assert.Len(t, quests, 2)
}

func TestStaticGenerator(t *testing.T) {
	quests, err := Static{}.GenerateQuests(context.Background(), Profile{Name: "X", Level: 2, Rank: engine.RankE, Count: 4})
	require.NoError(t, err)
	require.Len(t, quests, 4)

	seen := map[string]bool{}
	hasDistance := false
	for _, q := range quests {
		assert.False(t, seen[q.ID], "duplicate id %s", q.ID)
		seen[q.ID] = true
		assert.Positive(t, q.Goal)
		assert.True(t, q.Kind.IsValid())
		if q.Kind == engine.KindDistance {
			hasDistance = true
		}
	}
	assert.True(t, hasDistance)
}
