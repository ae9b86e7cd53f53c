package types

import "strings"

// Checklist item outcomes. The model answers in Portuguese with accents and
// inconsistent casing, so comparisons always go through Normalize.
const (
	StatusConforme    = "Conforme"
	StatusNaoConforme = "Não Conforme"
	StatusNA          = "N/A"
)

// CriticalCategory zeroes the whole evaluation when any of its items comes
// back non-compliant.
const CriticalCategory = "Falha Critica"

// ItemResult is one scored checklist item.
type ItemResult struct {
	Status string  `json:"status"`
	Weight float64 `json:"peso"`
	Note   string  `json:"observacao,omitempty"`
}

// Items maps category name -> item description -> result.
type Items map[string]map[string]ItemResult

// Evaluation is the scored result for one call. It is created once per
// transcript, adjusted only by weight redistribution, and then persisted.
type Evaluation struct {
	CallID          string  `json:"id_chamada"`
	Evaluator       string  `json:"avaliador"`
	Items           Items   `json:"itens"`
	TotalScore      float64 `json:"pontuacao_total"`
	PercentScore    float64 `json:"pontuacao_percentual"`
	CriticalFailure bool    `json:"falha_critica"`
}

// ApprovalThreshold is the percent score at or above which a call passes.
const ApprovalThreshold = 70.0

// Approved reports whether the evaluation passes review.
func (e Evaluation) Approved() bool {
	return e.PercentScore >= ApprovalThreshold
}

var naSpellings = map[string]bool{
	"N/A":   true,
	"NA":    true,
	`N\A`:   true,
	"N. A.": true,
}

// IsNA matches every spelling of "not applicable" the model has produced.
func IsNA(status string) bool {
	return naSpellings[strings.ToUpper(strings.TrimSpace(status))]
}

// IsConforme reports whether a status counts as compliant.
func IsConforme(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), "CONFORME")
}

// IsNaoConforme reports whether a status counts as non-compliant, with or
// without the accent.
func IsNaoConforme(status string) bool {
	s := strings.ToUpper(strings.TrimSpace(status))
	return s == "NÃO CONFORME" || s == "NAO CONFORME" || s == "NC"
}

// IsCritical matches the critical-failure category name loosely.
func IsCritical(category string) bool {
	return strings.EqualFold(strings.TrimSpace(category), CriticalCategory)
}

// DBResult maps a raw status to the values the itens_avaliados table stores.
func DBResult(status string) string {
	switch {
	case IsConforme(status):
		return "CONFORME"
	case IsNaoConforme(status):
		return "NAO CONFORME"
	default:
		return "NAO SE APLICA"
	}
}
