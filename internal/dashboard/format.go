package dashboard

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	supportedTags = []language.Tag{language.AmericanEnglish, language.Spanish, language.French, language.German}
	tagMatcher    = language.NewMatcher(supportedTags)
)

// numberFormat renders counts with locale-aware digit grouping.
type numberFormat struct {
	p *message.Printer
}

func newNumberFormat(tag language.Tag) numberFormat {
	return numberFormat{p: message.NewPrinter(tag)}
}

// Int formats n with grouping separators.
func (f numberFormat) Int(n int) string { return f.p.Sprintf("%d", n) }

// Float formats v with two decimals.
func (f numberFormat) Float(v float64) string { return f.p.Sprintf("%.2f", v) }

// Percent formats a ratio in [0, 1] as a percentage.
func (f numberFormat) Percent(v float64) string { return f.p.Sprintf("%.1f%%", v*100) }

// requestTag picks the page locale from the Accept-Language header.
func requestTag(r *http.Request) language.Tag {
	accept := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if accept == "" {
		return language.AmericanEnglish
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return language.AmericanEnglish
	}
	_, idx, _ := tagMatcher.Match(tags...)
	return supportedTags[idx]
}
