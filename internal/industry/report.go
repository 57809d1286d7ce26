package industry

import (
	"fmt"
	"strings"
)

const (
	quickDefWords     = 28
	extractWords      = 60
	quickDefsBudget   = 130
	extractsBudget    = 220
	emptyBulletsBlock = "- (No extract text available.)"
)

var keyThemesBlock = strings.Join([]string{
	"Key themes",
	"- Scope & definition: What the industry includes, its core activities, and common boundaries.",
	"- Value chain: Typical upstream inputs, production/service delivery, and downstream customers/end users.",
	"- Enablers: Technologies, infrastructure, standards, and processes that commonly show up across the pages.",
	"- Ecosystem: Adjacent sectors, institutions, and public/private actors that influence outcomes.",
}, "\n")

var currentDynamicsBlock = strings.Join([]string{
	"Current dynamics",
	"- Demand-side: The use-cases and adoption contexts implied by the descriptions (who uses the outputs and why).",
	"- Supply-side: Inputs, operational complexity, scaling constraints, and typical bottlenecks suggested by the coverage.",
	"- Differentiation: Where competition tends to focus (cost, performance, reliability, compliance, and distribution).",
}, "\n")

// BuildReport assembles the bounded industry report from up to five documents.
// The output never exceeds MaxReportWords: per-bullet greedy caps bound the
// derived blocks, a sentence-respecting pass bounds the whole narrative, and a
// hard word slice backstops the fixed editorial text.
func BuildReport(industryQuery string, docs []Document) string {
	if len(docs) > DefaultMinResults {
		docs = docs[:DefaultMinResults]
	}

	var titles, quickDefs, extracts []string
	for _, d := range docs {
		title := d.Title
		if title == "" {
			title = PlaceholderTitle
		}
		titles = append(titles, title)

		cleaned := CleanText(reportText(d))
		if cleaned == "" {
			continue
		}
		if def := quickDefinition(cleaned); def != "" {
			quickDefs = append(quickDefs, fmt.Sprintf("- %s: %s", title, def))
		}
		if ex := groundingExtract(cleaned); ex != "" {
			extracts = append(extracts, fmt.Sprintf("- %s: %s", title, ex))
		}
	}

	defsBlock := takeBulletsUpToWords(quickDefs, quickDefsBudget)
	if defsBlock == "" {
		defsBlock = emptyBulletsBlock
	}
	extractsBlock := takeBulletsUpToWords(extracts, extractsBudget)
	if extractsBlock == "" {
		extractsBlock = emptyBulletsBlock
	}

	overview := fmt.Sprintf("Industry report: %s.\n\nOverview\n"+
		"This report is grounded in the following encyclopedia topics: %s. "+
		"It summarizes the industry's basic definition, typical structure, and recurring themes as described by those pages.",
		strings.TrimSpace(industryQuery), strings.Join(titles, ", "))

	sections := []string{
		overview,
		"Notable subtopics & quick definitions\n" + defsBlock,
		keyThemesBlock,
		currentDynamicsBlock,
		"Grounding extracts (snippets)\n" + extractsBlock,
	}

	report := enforceWordBudget(sections, MaxReportWords)

	// Last-resort safeguard: a non-graceful slice, distinct from the
	// sentence-respecting trim above.
	if words := strings.Fields(report); len(words) > MaxReportWords {
		report = strings.Join(words[:MaxReportWords], " ")
	}
	return report
}

// reportText resolves which text represents a document in the report: the
// short-form extract when present, the full body otherwise.
func reportText(d Document) string {
	if strings.TrimSpace(d.Extract) != "" {
		return d.Extract
	}
	return d.Body
}

// quickDefinition takes the first sentence, hard-capped to 28 words. Text with
// no sentence boundary contributes its first 28 words instead.
func quickDefinition(cleaned string) string {
	sentences := SplitSentences(cleaned)
	src := cleaned
	if len(sentences) > 0 {
		src = sentences[0]
	}
	return endWithPeriod(capWords(src, quickDefWords))
}

// groundingExtract takes the first two sentences (or whatever exists),
// hard-capped to 60 words.
func groundingExtract(cleaned string) string {
	sentences := SplitSentences(cleaned)
	src := cleaned
	switch {
	case len(sentences) >= 2:
		src = sentences[0] + " " + sentences[1]
	case len(sentences) == 1:
		src = sentences[0]
	}
	return endWithPeriod(capWords(src, extractWords))
}

func endWithPeriod(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), ".")
	if s == "" {
		return ""
	}
	return s + "."
}

// takeBulletsUpToWords greedily includes whole bullets while the running word
// total stays within budget, then stops.
func takeBulletsUpToWords(bullets []string, maxWords int) string {
	var out []string
	total := 0
	for _, b := range bullets {
		n := WordCount(b)
		if total+n > maxWords {
			break
		}
		out = append(out, b)
		total += n
	}
	return strings.Join(out, "\n")
}

// enforceWordBudget concatenates sections in order, admitting whole sentences
// until the budget is spent. Sections never interleave and no sentence is cut
// mid-way.
func enforceWordBudget(sections []string, maxWords int) string {
	report := ""
	for _, section := range sections {
		remaining := maxWords - WordCount(report)
		report = addSentencesUpToBudget(report, section, remaining)
		if WordCount(report) >= maxWords {
			break
		}
	}
	return strings.TrimSpace(report)
}

func addSentencesUpToBudget(existing, candidate string, remainingWords int) string {
	if remainingWords <= 0 {
		return existing
	}
	out := existing
	for _, s := range SplitSentences(candidate) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		sep := ""
		if out != "" && !strings.HasSuffix(out, "\n") {
			sep = "\n"
		}
		attempt := out + sep + s
		if WordCount(attempt) <= WordCount(out)+remainingWords {
			out = attempt
		} else {
			break
		}
	}
	return out
}
