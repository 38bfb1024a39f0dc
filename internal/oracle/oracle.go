// Package oracle is the quest-content boundary: it turns player stats into a
// batch of quest definitions, either via a generative-AI endpoint or a
// built-in fallback set.
package oracle

import (
	"context"
	"errors"

	"fitquest/internal/engine"
)

// ErrUnavailable marks network/transport failures of the oracle call.
var ErrUnavailable = errors.New("quest oracle unavailable")

// ErrBadPayload marks a response that does not conform to the quest schema.
// The whole call fails; partial batches are never accepted.
var ErrBadPayload = errors.New("quest oracle returned a malformed payload")

// Profile is everything the generator may know about the player.
type Profile struct {
	Name    string
	Level   int
	Rank    engine.Rank
	Answers []string // onboarding questionnaire answers, empty on daily refresh
	Count   int      // requested batch size
}

// Generator produces a fresh quest batch for the given profile.
type Generator interface {
	GenerateQuests(ctx context.Context, profile Profile) ([]engine.Quest, error)
}
