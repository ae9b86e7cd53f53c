package diarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/WanderTerra/Automacao-monitoria/internal/llm"
)

const labelSystemPrompt = "Você é um assistente especializado em identificar falantes em transcrições de ligações de cobrança."

const labelRules = `Analise esta transcrição de uma ligação de cobrança e identifique quem está falando em cada momento.

Regras para identificar os falantes:
- O Cliente geralmente inicia com "Alô", pergunta "quem é" ou "quem fala", e responde às perguntas
- O Agente pergunta o nome do cliente. Ex: 'Boa tarde, falo com a Giovana?' ou 'Falo com Raimundo?'
- O Cliente pergunta o valor da dívida
- O Agente informa o valor da dívida
- O Agente geralmente se apresenta, dá bom dia, menciona a empresa, explica sobre débitos/cobranças
- O Agente conduz a conversa fazendo perguntas sobre pagamentos
- O Cliente geralmente responde às perguntas do agente
- O Cliente pode alegar que já saiu do lugar de onde está sendo cobrado, por isso não reconhece a dívida
- O Agente agenda o retorno, confirma o pagamento, e reforça a data-limite e as condições
- O Agente fornece informações sobre o pagamento, como valores, descontos e parcelas

Formato da transcrição original:
[TIMESTAMP] SPEAKER_ID: texto da fala

Reescreva a transcrição no seguinte formato, SEMPRE na mesma linha:
Agente: frase da fala do agente
Cliente: frase da fala do cliente
(Cada linha deve começar com 'Agente:' ou 'Cliente:' seguido da fala, sem linhas separadas para o nome do falante e a fala, e sem texto extra.)

Transcrição:
`

// ModelLabeler delegates labeling to the chat model: the whole transcript
// goes out in one request and the rewritten text comes back verbatim. The
// only validation is that both role prefixes appear in the answer.
type ModelLabeler struct {
	Client *llm.Client
}

func (l *ModelLabeler) Label(ctx context.Context, transcript string) (string, error) {
	out, err := l.Client.Chat(ctx, []llm.Message{
		{Role: "system", Content: labelSystemPrompt},
		{Role: "user", Content: labelRules + transcript},
	}, 0.1, 4096)
	if err != nil {
		return transcript, err
	}
	if !strings.Contains(out, RoleAgent+":") || !strings.Contains(out, RoleCustomer+":") {
		return transcript, fmt.Errorf("model reply missing %s:/%s: prefixes", RoleAgent, RoleCustomer)
	}
	return out, nil
}
