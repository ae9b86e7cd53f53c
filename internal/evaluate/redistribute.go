package evaluate

import (
	"math"

	"github.com/WanderTerra/Automacao-monitoria/internal/types"
)

// Redistribute recomputes checklist weights so they sum to 1 across only the
// applicable items: N/A items and the critical-failure category are excluded
// and zeroed, every other item gets round(1/N, 4). The total is the weight
// sum of compliant items, scaled to 0-10 and 0-100; a non-compliant critical
// item forces both scores to zero.
//
// The input is never modified. When every item is excluded the evaluation is
// returned as-is, weights untouched.
func Redistribute(e types.Evaluation) types.Evaluation {
	eligible := 0
	critical := false
	for cat, items := range e.Items {
		for _, item := range items {
			switch {
			case types.IsCritical(cat):
				if types.IsNaoConforme(item.Status) {
					critical = true
				}
			case !types.IsNA(item.Status):
				eligible++
			}
		}
	}
	if eligible == 0 {
		return e
	}

	weight := round(1.0/float64(eligible), 4)
	total := 0.0
	out := e
	out.Items = make(types.Items, len(e.Items))
	for cat, items := range e.Items {
		copied := make(map[string]types.ItemResult, len(items))
		for name, item := range items {
			if types.IsCritical(cat) || types.IsNA(item.Status) {
				item.Weight = 0
			} else {
				item.Weight = weight
				if types.IsConforme(item.Status) {
					total += weight
				}
			}
			copied[name] = item
		}
		out.Items[cat] = copied
	}

	if critical {
		total = 0
	}
	out.CriticalFailure = critical
	out.TotalScore = round(total*10, 2)
	out.PercentScore = round(total*100, 1)
	return out
}

func round(x float64, decimals int) float64 {
	pow := math.Pow10(decimals)
	return math.Round(x*pow) / pow
}
