// Package report renders a monitoring run into the CSV files and
// consolidated workbook the quality team consumes.
package report

import (
	"sort"
	"time"

	"github.com/WanderTerra/Automacao-monitoria/internal/audio"
	"github.com/WanderTerra/Automacao-monitoria/internal/types"
)

// Row is one evaluated call ready for reporting.
type Row struct {
	CallID     string
	When       time.Time
	AgentID    string
	Queue      string
	Evaluation types.Evaluation
	Cost       audio.Cost
	// ProcessingSecs is the wall time the transcription stage spent on the
	// call, zero when the row was rebuilt from the database.
	ProcessingSecs float64
}

// QualityIssue flags a transcript whose completeness check failed.
type QualityIssue struct {
	File         string
	DurationSecs float64
	Words        int
	Reason       string
}

// CategoryStatus collapses a category's items into the single cell the
// report shows: any non-compliant item marks the whole category.
func CategoryStatus(e types.Evaluation, category string) string {
	items, ok := e.Items[category]
	if !ok || len(items) == 0 {
		return "NAO SE APLICA"
	}
	anyConforme := false
	for _, item := range items {
		if types.IsNaoConforme(item.Status) {
			return "NAO CONFORME"
		}
		if types.IsConforme(item.Status) {
			anyConforme = true
		}
	}
	if anyConforme {
		return "CONFORME"
	}
	return "NAO SE APLICA"
}

// AgentStats accumulates one agent's results across a run.
type AgentStats struct {
	AgentID       string
	Calls         int
	Approved      int
	SumPercent    float64
	NonConformant map[string]int
}

// AvgPercent is the mean percent score over the agent's calls.
func (s AgentStats) AvgPercent() float64 {
	if s.Calls == 0 {
		return 0
	}
	return s.SumPercent / float64(s.Calls)
}

// Summary aggregates a run per agent, counting non-compliant categories so
// coaching can target the weakest areas.
type Summary struct {
	TotalCalls int
	Approved   int
	PerAgent   map[string]*AgentStats
}

func Aggregate(rows []Row, categories []string) Summary {
	s := Summary{PerAgent: map[string]*AgentStats{}}
	for _, r := range rows {
		s.TotalCalls++
		if r.Evaluation.Approved() {
			s.Approved++
		}
		st, ok := s.PerAgent[r.AgentID]
		if !ok {
			st = &AgentStats{AgentID: r.AgentID, NonConformant: map[string]int{}}
			s.PerAgent[r.AgentID] = st
		}
		st.Calls++
		st.SumPercent += r.Evaluation.PercentScore
		if r.Evaluation.Approved() {
			st.Approved++
		}
		for _, cat := range categories {
			if CategoryStatus(r.Evaluation, cat) == "NAO CONFORME" {
				st.NonConformant[cat]++
			}
		}
	}
	return s
}

// Agents returns the per-agent stats sorted by agent id, for stable output.
func (s Summary) Agents() []*AgentStats {
	out := make([]*AgentStats, 0, len(s.PerAgent))
	for _, st := range s.PerAgent {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AgentID < out[j].AgentID })
	return out
}
