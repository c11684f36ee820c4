// Package llm wraps the genkit completion client behind the one operation
// the chat relay needs.
package llm

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/trooper-recruit/engage-api/internal/config"
)

// Generator produces a single completion for a system prompt and a user
// question. Kept minimal so tests can fake it.
type Generator interface {
	GenerateText(ctx context.Context, system, question string) (string, error)
}

type genkitGenerator struct {
	client *genkit.Genkit
	model  string
}

func NewGenerator(client *genkit.Genkit, cfg *config.Config) Generator {
	return &genkitGenerator{
		client: client,
		model:  cfg.LLM.Model,
	}
}

func (g *genkitGenerator) GenerateText(ctx context.Context, system, question string) (string, error) {
	resp, err := genkit.Generate(ctx, g.client,
		ai.WithMessages(
			ai.NewSystemTextMessage(system),
			ai.NewUserTextMessage(question),
		),
		ai.WithModelName(g.model),
	)
	if err != nil {
		return "", fmt.Errorf("generate completion: %w", err)
	}
	return resp.Text(), nil
}
