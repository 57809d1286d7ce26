package industry

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	alnumRe      = regexp.MustCompile(`[A-Za-z0-9]`)
	numPunctRe   = regexp.MustCompile(`([0-9])\s*([.,])\s*([0-9])`)
	digitGapRe   = regexp.MustCompile(`([0-9])\s+([0-9])`)
	prePunctRe   = regexp.MustCompile(`\s+([,.;:!?])`)
)

// Normalize collapses whitespace runs to single spaces, trims, and lowercases.
func Normalize(s string) string {
	return strings.ToLower(whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " "))
}

// HasRealText reports whether s contains at least one alphanumeric character
// after trimming. This is the only non-empty-input gate the validator applies.
func HasRealText(s string) bool {
	return alnumRe.MatchString(strings.TrimSpace(s))
}

// CleanText repairs spacing artifacts common in extracted page text: whitespace
// runs, spaces inside numbers ("1 , 000"), spelled-out letter runs ("U S A"),
// and spaces before punctuation. Pass order matters: the later passes assume
// single-space separators.
func CleanText(raw string) string {
	s := whitespaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	s = replaceUntilStable(numPunctRe, s, "$1$2$3")
	s = replaceUntilStable(digitGapRe, s, "$1$2")
	s = joinLetterRuns(s)
	s = prePunctRe.ReplaceAllString(s, "$1")
	return s
}

// replaceUntilStable reapplies the rewrite until a fixed point, since
// non-overlapping replacement can leave adjacent matches behind ("1 2 3").
func replaceUntilStable(re *regexp.Regexp, s, repl string) string {
	for {
		next := re.ReplaceAllString(s, repl)
		if next == s {
			return next
		}
		s = next
	}
}

// joinLetterRuns collapses runs of two or more single-letter tokens into one
// token, repairing extraction artifacts like "U S A" -> "USA".
func joinLetterRuns(s string) string {
	tokens := strings.Split(s, " ")
	out := make([]string, 0, len(tokens))
	run := make([]string, 0, 4)

	flush := func() {
		if len(run) >= 2 {
			out = append(out, strings.Join(run, ""))
		} else {
			out = append(out, run...)
		}
		run = run[:0]
	}

	for _, tok := range tokens {
		if len(tok) == 1 && isLetter(tok[0]) {
			run = append(run, tok)
			continue
		}
		flush()
		out = append(out, tok)
	}
	flush()
	return strings.Join(out, " ")
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// SplitSentences normalizes whitespace and splits after any of . ! ? followed
// by whitespace, discarding empty fragments.
func SplitSentences(text string) []string {
	t := whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	if t == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(t)-1; i++ {
		if (t[i] == '.' || t[i] == '!' || t[i] == '?') && t[i+1] == ' ' {
			s := strings.TrimSpace(t[start : i+1])
			if s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(t[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func capWords(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:max], " ")
}
