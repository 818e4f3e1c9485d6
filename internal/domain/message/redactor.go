package message

import (
	"regexp"
	"strings"
)

const Mask = "***"

// ===============================
// Patterns
// ===============================

var (
	emailPattern = regexp.MustCompile(
		`(?i)[a-z0-9._%+\-]+\s*(?:@|\(at\)|\[at\])\s*[a-z0-9.\-]+\.[a-z]{2,}`,
	)

	urlPattern = regexp.MustCompile(
		`(?i)\b(?:https?://|www\.)[^\s]+`,
	)

	domainPattern = regexp.MustCompile(
		`(?i)\b[a-z0-9][a-z0-9\-]*(?:\.[a-z0-9\-]+)*\.(?:com|net|org|io|hu|de|at|eu|info|biz|co|me|app|dev)\b(?:/[^\s]*)?`,
	)

	// candidato a telefone: começa com + ou dígito, aceita espaço, ponto,
	// hífen, barra e parênteses entre dígitos
	phoneCandidate = regexp.MustCompile(
		`\+?\(?\d[\d\s().\-/]{5,}\d`,
	)

	// datas (2026-03-02, 2026.03.02., 03/02/2026) e valores com moeda
	// (1 500 000 HUF) ficam fora da busca por telefone
	schedulingToken = regexp.MustCompile(
		`(?i)\b(?:19|20)\d{2}[-./]\d{1,2}[-./]\d{1,2}\b\.?` +
			`|\b\d{1,2}[-./]\d{1,2}[-./](?:19|20)\d{2}\b` +
			`|\b\d{1,3}(?:[ .,]\d{3})+(?:[.,]\d{1,2})?\s*(?:huf|ft|eur|usd|€|\$)` +
			`|(?:huf|eur|usd|€|\$)\s*\d{1,3}(?:[ .,]\d{3})+(?:[.,]\d{1,2})?\b`,
	)
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// ===============================
// Redact
// ===============================

// Redact mascara emails, URLs/domínios e sequências com cara de telefone.
// A mensagem nunca é bloqueada: o flag vira só um aviso para quem enviou.
func Redact(raw string) (stored string, containsContact bool) {
	stored = raw

	for _, re := range []*regexp.Regexp{emailPattern, urlPattern, domainPattern} {
		if re.MatchString(stored) {
			containsContact = true
			stored = re.ReplaceAllString(stored, Mask)
		}
	}

	stored, phone := maskPhones(stored)
	return stored, containsContact || phone
}

// maskPhones só olha os trechos entre datas e valores.
func maskPhones(s string) (string, bool) {
	var (
		b     strings.Builder
		found bool
		last  int
	)

	for _, loc := range schedulingToken.FindAllStringIndex(s, -1) {
		out, hit := maskPhoneSegment(s[last:loc[0]])
		b.WriteString(out)
		b.WriteString(s[loc[0]:loc[1]])
		found = found || hit
		last = loc[1]
	}
	out, hit := maskPhoneSegment(s[last:])
	b.WriteString(out)

	return b.String(), found || hit
}

func maskPhoneSegment(s string) (string, bool) {
	found := false
	out := phoneCandidate.ReplaceAllStringFunc(s, func(m string) string {
		if !looksLikePhone(m) {
			return m
		}
		found = true
		return Mask
	})
	return out, found
}

func looksLikePhone(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits && digits <= maxPhoneDigits
}
