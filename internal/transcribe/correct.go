package transcribe

import "regexp"

// The speech model garbles the firm name in predictable ways; the checklist
// prompts key off the exact spelling, so canonicalize before anything else
// sees the text.
var firmVariants = []*regexp.Regexp{
	regexp.MustCompile(`(?i)partes de advogados`),
	regexp.MustCompile(`(?i)porta de advogados`),
	regexp.MustCompile(`(?i)parte de advogados`),
	regexp.MustCompile(`(?i)portas de advogados`),
	regexp.MustCompile(`(?i)portas advogados`),
	regexp.MustCompile(`(?i)porta advogados`),
	regexp.MustCompile(`(?i)partes advogados`),
	regexp.MustCompile(`(?i)porta dos advogados`),
	regexp.MustCompile(`(?i)portas dos advogados`),
	regexp.MustCompile(`(?i)parte dos advogados`),
	regexp.MustCompile(`(?i)partes dos advogados`),
	regexp.MustCompile(`(?i)parte da advogados`),
	regexp.MustCompile(`(?i)portas da advogados`),
	regexp.MustCompile(`(?i)porta da advogados`),
	regexp.MustCompile(`(?i)porta advogada`),
	regexp.MustCompile(`(?i)portas advogadas`),
	regexp.MustCompile(`(?i)parte advogada`),
	regexp.MustCompile(`(?i)porta de advogado`),
	regexp.MustCompile(`(?i)portas de advogado`),
	regexp.MustCompile(`(?i)parte de advogado`),
	regexp.MustCompile(`(?i)pai dos advogados`),
	regexp.MustCompile(`(?i)porto advogados`),
	regexp.MustCompile(`(?i)porta de jogados`),
	regexp.MustCompile(`(?i)parque dos advogados`),
}

// CanonicalizeFirm rewrites known mis-transcriptions of "Portes Advogados".
func CanonicalizeFirm(text string) string {
	for _, re := range firmVariants {
		text = re.ReplaceAllString(text, "Portes Advogados")
	}
	return text
}
