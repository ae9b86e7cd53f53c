package diarize

import (
	"context"
	"regexp"
	"strings"
)

// transcriptLine matches "[HH:MM:SS.ss - HH:MM:SS.ss] SPEAKER: text".
var transcriptLine = regexp.MustCompile(`^(\[[^\]]+\]) ([^:]+): (.*)$`)

var (
	greetings    = []string{"bom dia", "boa tarde", "boa noite"}
	selfIntros   = []string{"me chamo", "meu nome é", "falo da", "falo do"}
	agentVocab   = []string{"débito", "desconto", "pagamento", "notificação", "assessoria", "cobrança"}
	customerTics = []string{"obrigado", "obrigada", "tá bom", "pode ser", "nem lembrava"}
)

// RuleLabeler classifies speakers with collection-call heuristics: the
// customer answers the phone ("alô", "quem fala"), the agent greets,
// introduces themselves and talks about the debt. A role learned for a raw
// speaker ID propagates to its later lines; a second pass settles leftovers
// from their labeled neighbors.
type RuleLabeler struct{}

func (l *RuleLabeler) Label(_ context.Context, transcript string) (string, error) {
	lines := strings.Split(transcript, "\n")
	out := make([]string, len(lines))
	roleByID := map[string]string{}
	sawHello := false

	for i, line := range lines {
		out[i] = line
		m := transcriptLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		stamp, id, text := m[1], m[2], m[3]
		lower := strings.ToLower(text)

		role := ""
		switch {
		case !sawHello && strings.Contains(lower, "alô"):
			role = RoleCustomer
			sawHello = true
		case strings.Contains(lower, "quem fala"):
			role = RoleCustomer
		case containsAny(lower, greetings) && containsAny(lower, selfIntros):
			role = RoleAgent
		case containsAny(lower, agentVocab):
			role = RoleAgent
		case id != UnknownSpeaker && roleByID[id] != "":
			// Propagation is only sound for a real speaker identity; the
			// unknown placeholder is shared by both parties, so its
			// trigger-less lines wait for the neighbor pass.
			role = roleByID[id]
		}
		if role == "" {
			continue
		}
		roleByID[id] = role
		out[i] = stamp + " " + role + ": " + text
	}

	if hasRole(roleByID, RoleCustomer) && hasRole(roleByID, RoleAgent) {
		resolveLeftovers(out)
	}
	return strings.Join(out, "\n"), nil
}

// resolveLeftovers labels lines the first pass could not place. When the
// nearest labeled lines before and after agree, the line in between is most
// likely the other party; otherwise short acknowledgment phrases point at
// the customer.
func resolveLeftovers(lines []string) {
	labeled := regexp.MustCompile(`\] (Agente|Cliente):`)
	for i, line := range lines {
		m := transcriptLine.FindStringSubmatch(line)
		if m == nil || m[2] == RoleAgent || m[2] == RoleCustomer {
			continue
		}

		before, after := "", ""
		for j := i - 1; j >= 0; j-- {
			if s := labeled.FindStringSubmatch(lines[j]); s != nil {
				before = s[1]
				break
			}
		}
		for j := i + 1; j < len(lines); j++ {
			if s := labeled.FindStringSubmatch(lines[j]); s != nil {
				after = s[1]
				break
			}
		}

		role := RoleAgent
		if before != "" && before == after {
			if before == RoleAgent {
				role = RoleCustomer
			}
		} else if containsAny(strings.ToLower(m[3]), customerTics) {
			role = RoleCustomer
		}
		lines[i] = m[1] + " " + role + ": " + m[3]
	}
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func hasRole(m map[string]string, role string) bool {
	for _, r := range m {
		if r == role {
			return true
		}
	}
	return false
}
