package industry

import (
	"strings"
	"testing"
)

func TestBuildReportWordBudget(t *testing.T) {
	long := strings.Repeat("The industry keeps expanding across every region and market segment. ", 40)
	for n := 0; n <= 5; n++ {
		docs := make([]Document, 0, n)
		for i := 0; i < n; i++ {
			docs = append(docs, Document{Title: "Topic", URL: "https://example.org", Body: long})
		}
		report := BuildReport("semiconductor industry", docs)
		if wc := WordCount(report); wc > MaxReportWords {
			t.Fatalf("n=%d: report has %d words, budget %d", n, wc, MaxReportWords)
		}
	}
}

func TestBuildReportEmptyBodies(t *testing.T) {
	docs := []Document{
		{Title: "Empty A", URL: "https://example.org/a"},
		{Title: "Empty B", URL: "https://example.org/b"},
	}
	report := BuildReport("fintech", docs)
	if !strings.Contains(report, "(No extract text available.)") {
		t.Fatalf("missing placeholder:\n%s", report)
	}
	if !strings.Contains(report, "Key themes") {
		t.Fatalf("missing fixed thematic section:\n%s", report)
	}
	if !strings.Contains(report, "Current dynamics") {
		t.Fatalf("missing fixed thematic section:\n%s", report)
	}
	if wc := WordCount(report); wc > MaxReportWords {
		t.Fatalf("report has %d words, budget %d", wc, MaxReportWords)
	}
}

func TestBuildReportListsTitles(t *testing.T) {
	docs := []Document{
		{Title: "Banking", URL: "https://example.org/1", Extract: "Banking is the business of accepting deposits. Banks lend money."},
		{Title: "Insurance", URL: "https://example.org/2", Extract: "Insurance is a means of protection from financial loss."},
	}
	report := BuildReport("financial services", docs)
	if !strings.Contains(report, "Banking") || !strings.Contains(report, "Insurance") {
		t.Fatalf("expected both titles listed:\n%s", report)
	}
	if !strings.Contains(report, "Industry report: financial services.") {
		t.Fatalf("missing report header:\n%s", report)
	}
}

func TestBuildReportPrefersExtractOverBody(t *testing.T) {
	docs := []Document{{
		Title:   "Mining",
		URL:     "https://example.org/m",
		Extract: "Mining is the extraction of valuable minerals.",
		Body:    "UNUSEDBODYTEXT follows here with enough words to matter.",
	}}
	report := BuildReport("mining", docs)
	if strings.Contains(report, "UNUSEDBODYTEXT") {
		t.Fatalf("body used despite extract present:\n%s", report)
	}
	if !strings.Contains(report, "extraction of valuable minerals") {
		t.Fatalf("extract text missing:\n%s", report)
	}
}

func TestQuickDefinitionCapsAndPeriod(t *testing.T) {
	long := strings.Repeat("word ", 50) + "end."
	def := quickDefinition(long)
	if wc := WordCount(def); wc > quickDefWords {
		t.Fatalf("definition has %d words, cap %d", wc, quickDefWords)
	}
	if !strings.HasSuffix(def, ".") || strings.HasSuffix(def, "..") {
		t.Fatalf("definition not period-normalized: %q", def)
	}
}

func TestGroundingExtractUsesTwoSentences(t *testing.T) {
	text := "First sentence here. Second sentence here. Third sentence here."
	ex := groundingExtract(text)
	if !strings.Contains(ex, "Second sentence") {
		t.Fatalf("extract missing second sentence: %q", ex)
	}
	if strings.Contains(ex, "Third sentence") {
		t.Fatalf("extract should stop after two sentences: %q", ex)
	}
}

func TestTakeBulletsGreedyBudget(t *testing.T) {
	bullets := []string{
		"- one two three",    // 4 words
		"- four five six",    // 4 words
		"- seven eight nine", // 4 words
	}
	got := takeBulletsUpToWords(bullets, 8)
	if strings.Contains(got, "seven") {
		t.Fatalf("budget exceeded: %q", got)
	}
	if !strings.Contains(got, "one") || !strings.Contains(got, "four") {
		t.Fatalf("bullets under budget dropped: %q", got)
	}
}

func TestEnforceWordBudgetRespectsSentences(t *testing.T) {
	sections := []string{
		"Alpha beta gamma delta. Epsilon zeta eta theta.",
		"Iota kappa lambda mu. Nu xi omicron pi.",
	}
	got := enforceWordBudget(sections, 9)
	if WordCount(got) > 9 {
		t.Fatalf("budget exceeded: %q", got)
	}
	for _, line := range strings.Split(got, "\n") {
		if line != "" && !strings.HasSuffix(line, ".") {
			t.Fatalf("dangling fragment %q in %q", line, got)
		}
	}
	if !strings.Contains(got, "Epsilon") {
		t.Fatalf("second sentence under budget dropped: %q", got)
	}
	if strings.Contains(got, "Iota") {
		t.Fatalf("sentence over budget admitted: %q", got)
	}
}
