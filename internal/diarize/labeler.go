package diarize

import (
	"context"
	"fmt"

	"github.com/WanderTerra/Automacao-monitoria/internal/llm"
)

// Speaker roles used across transcripts, reports and the database.
const (
	RoleAgent    = "Agente"
	RoleCustomer = "Cliente"
)

// Labeler rewrites a merged transcript so every line carries an
// Agente/Cliente role instead of a raw diarization speaker ID. The two
// implementations are interchangeable and selected by configuration.
type Labeler interface {
	Label(ctx context.Context, transcript string) (string, error)
}

// NewLabeler returns the labeler named by mode: "rules" or "model".
func NewLabeler(mode string, client *llm.Client) (Labeler, error) {
	switch mode {
	case "rules":
		return &RuleLabeler{}, nil
	case "model":
		if client == nil {
			return nil, fmt.Errorf("model labeler needs an llm client")
		}
		return &ModelLabeler{Client: client}, nil
	default:
		return nil, fmt.Errorf("unknown speaker labeler %q", mode)
	}
}
