package util //nolint:revive // package name util hosts shared text helpers used across services

import (
	"strings"

	"golang.org/x/net/html"
)

// SanitizeText strips any HTML markup from user-submitted text, returning
// the concatenated text content with collapsed whitespace. Citizen input is
// stored plain; rendering clients never need to re-escape it.
func SanitizeText(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<>") {
		return normalizeSpace(s)
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return normalizeSpace(b.String())
		case html.TextToken:
			b.Write(tokenizer.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			// Tag boundaries become soft separators so "a<br>b" keeps a gap.
			b.WriteByte(' ')
		}
	}
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
