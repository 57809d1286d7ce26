package industry

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"  Banking   Sector ", "banking sector"},
		{"A\tB\nC", "a b c"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHasRealText(t *testing.T) {
	for _, s := range []string{"a", " 7 ", "fintech"} {
		if !HasRealText(s) {
			t.Errorf("HasRealText(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "   ", "!?-", "\t\n"} {
		if HasRealText(s) {
			t.Errorf("HasRealText(%q) = true, want false", s)
		}
	}
}

func TestCleanTextRepairsArtifacts(t *testing.T) {
	got := CleanText("U S A grows 1 , 000 %")
	if strings.Contains(got, "1 ,") || strings.Contains(got, ", 000") {
		t.Errorf("digit spacing not repaired: %q", got)
	}
	if !strings.Contains(got, "1,000") {
		t.Errorf("expected joined number in %q", got)
	}
	if !strings.Contains(got, "USA") {
		t.Errorf("expected joined letter run in %q", got)
	}
}

func TestCleanTextCases(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"pi is 3 . 14", "pi is 3.14"},
		{"grew by 1, 000 units", "grew by 1,000 units"},
		{"ends here .", "ends here."},
		{"word ; next", "word; next"},
		{"a single x token", "a single x token"},
		{"the U K and the E U", "the UK and the EU"},
		{"", ""},
	}
	for _, c := range cases {
		if got := CleanText(c.in); got != c.want {
			t.Errorf("CleanText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanTextIdempotent(t *testing.T) {
	samples := []string{
		"U S A grows 1 , 000 %",
		"Revenue rose 12 . 5 % in 2 0 2 3 , analysts said .",
		"plain text with nothing to fix",
		"  spaced   out\ttext \n lines ",
	}
	for _, s := range samples {
		once := CleanText(s)
		if twice := CleanText(once); twice != once {
			t.Errorf("CleanText not idempotent on %q: %q != %q", s, once, twice)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First one. Second one! Third? ")
	want := []string{"First one.", "Second one!", "Third?"}
	if len(got) != len(want) {
		t.Fatalf("got %d sentences %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
	if s := SplitSentences("   "); s != nil {
		t.Errorf("expected nil for blank input, got %v", s)
	}
	if s := SplitSentences("no boundary here"); len(s) != 1 || s[0] != "no boundary here" {
		t.Errorf("unexpected split %v", s)
	}
}

func TestWordCount(t *testing.T) {
	if n := WordCount("  a  b   c "); n != 3 {
		t.Errorf("WordCount = %d, want 3", n)
	}
	if n := WordCount(""); n != 0 {
		t.Errorf("WordCount empty = %d, want 0", n)
	}
}
