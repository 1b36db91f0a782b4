package ydresponse

import (
	"fmt"
	"strings"

	"github.com/rbhz/ydcv/app/formatters"
)

const (
	// NoResultMessage is shown when dictionary has nothing for the query
	NoResultMessage = " -- No result for this query."

	translationSeparator = "; "
	wideSeparator        = "；"
)

// Explain renders response as multiline text using given formatter
func (r Response) Explain(f formatters.Formatter) string {
	if !r.HasResult() {
		return f.Error(NoResultMessage)
	}

	if r.Basic == nil && r.Web == nil {
		return strings.Join([]string{
			f.Underline(r.Query),
			f.Heading("  Translation:"),
			"    " + f.Plain(strings.Join(r.Translation, wideSeparator)),
		}, "\n")
	}

	lines := []string{fmt.Sprintf(
		"%s %s %s",
		f.Underline(r.Query),
		r.phonetic(f),
		f.Plain(strings.Join(r.Translation, translationSeparator)),
	)}

	if r.Basic != nil && len(r.Basic.Explains) > 0 {
		lines = append(lines, f.Heading("  Word Explanation:"))
		for _, exp := range r.Basic.Explains {
			lines = append(lines, f.Plain("     * "+exp))
		}
	}

	if len(r.Web) > 0 {
		lines = append(lines, f.Heading("  Web Reference:"))
		for _, item := range r.Web {
			values := make([]string, 0, len(item.Value))
			for _, v := range item.Value {
				values = append(values, f.Secondary(v))
			}
			lines = append(lines,
				"     * "+f.Value(item.Key),
				"       "+strings.Join(values, wideSeparator),
			)
		}
	}
	return strings.Join(lines, "\n")
}

// phonetic prefers regional pronunciations over the single one.
// A lone regional pronunciation is shown by itself.
func (r Response) phonetic(f formatters.Formatter) string {
	if r.Basic == nil {
		return ""
	}
	uk, us := r.Basic.UKPhonetic, r.Basic.USPhonetic
	switch {
	case uk != nil && us != nil:
		return fmt.Sprintf(" UK: [%s], US: [%s]", f.Value(*uk), f.Value(*us))
	case uk != nil:
		return fmt.Sprintf(" UK: [%s]", f.Value(*uk))
	case us != nil:
		return fmt.Sprintf(" US: [%s]", f.Value(*us))
	case r.Basic.Phonetic != nil:
		return fmt.Sprintf("[%s]", f.Value(*r.Basic.Phonetic))
	}
	return ""
}
