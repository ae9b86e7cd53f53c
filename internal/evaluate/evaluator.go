// Package evaluate scores a labeled transcript against the monitoring
// checklist through the chat model and owns the weight-redistribution
// arithmetic applied to every fresh evaluation.
package evaluate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/WanderTerra/Automacao-monitoria/internal/llm"
	"github.com/WanderTerra/Automacao-monitoria/internal/types"
)

// EvaluatorName is recorded on every persisted evaluation.
const EvaluatorName = "MonitorGPT"

// ErrBadReply marks responses that came back but are not a usable
// evaluation: not JSON, or JSON without the checklist. Retrying these
// without a new transcript is pointless, so the pipeline routes the item to
// the error folder instead.
var ErrBadReply = errors.New("model reply is not a valid evaluation")

type Evaluator struct {
	client *llm.Client
}

func NewEvaluator(client *llm.Client) *Evaluator {
	return &Evaluator{client: client}
}

// Evaluate sends the transcript through the rubric prompt, parses the JSON
// reply and redistributes the checklist weights. Set USE_MOCK_LLM=true for
// offline runs.
func (ev *Evaluator) Evaluate(ctx context.Context, callID, transcript string) (types.Evaluation, error) {
	if os.Getenv("USE_MOCK_LLM") == "true" {
		return Redistribute(mockEvaluation(callID)), nil
	}

	content, err := ev.client.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("ID_CHAMADA=%s\n\nTRANSCRICAO:\n%s", callID, transcript)},
	}, 0, 1024)
	if err != nil {
		return types.Evaluation{}, err
	}

	raw, ok := llm.ExtractJSON(content)
	if !ok {
		return types.Evaluation{}, fmt.Errorf("%w: no JSON object in reply", ErrBadReply)
	}
	var e types.Evaluation
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return types.Evaluation{}, fmt.Errorf("%w: %v", ErrBadReply, err)
	}
	if len(e.Items) == 0 {
		return types.Evaluation{}, fmt.Errorf(`%w: missing "itens"`, ErrBadReply)
	}

	e.CallID = callID
	if e.Evaluator == "" {
		e.Evaluator = EvaluatorName
	}
	// The model scales against the rubric maximum; redistribution below
	// recomputes both scores, this only fills the gap when it echoes none.
	if e.PercentScore == 0 && e.TotalScore > 0 {
		e.PercentScore = round(e.TotalScore/maxRubricScore*100, 1)
	}
	return Redistribute(e), nil
}

func mockEvaluation(callID string) types.Evaluation {
	return types.Evaluation{
		CallID:    callID,
		Evaluator: EvaluatorName,
		Items: types.Items{
			"Abordagem": {
				"Atendeu prontamente": {Status: types.StatusConforme, Weight: 0.25, Note: "atendeu no primeiro toque"},
			},
			"Encerramento": {
				"Perguntou 'Posso ajudar em algo mais?' e agradeceu": {Status: types.StatusNA, Weight: 0.4, Note: "sem acordo fechado"},
			},
			types.CriticalCategory: {
				"Sem falha crítica": {Status: types.StatusConforme, Weight: 0},
			},
		},
	}
}
