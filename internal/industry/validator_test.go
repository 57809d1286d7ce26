package industry

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakeRetriever struct {
	docs      []Document
	err       error
	seenQuery string
	calls     int
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string) ([]Document, error) {
	f.calls++
	f.seenQuery = query
	return f.docs, f.err
}

func businessDocs(n int) []Document {
	out := make([]Document, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Document{
			Title: fmt.Sprintf("Semiconductor industry %d", i),
			URL:   fmt.Sprintf("https://en.wikipedia.org/wiki/Semi_%d", i),
			Body:  "The semiconductor industry is the aggregate of companies engaged in the design and fabrication of semiconductors. Market revenue keeps growing.",
		})
	}
	return out
}

func genericDocs(n int) []Document {
	out := make([]Document, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Document{
			Title: fmt.Sprintf("Butterfly %d", i),
			URL:   fmt.Sprintf("https://en.wikipedia.org/wiki/Butterfly_%d", i),
			Body:  "Butterflies are insects with large, often brightly coloured wings. They fly during the day.",
		})
	}
	return out
}

func newTestValidator(r Retriever) *Validator {
	return NewValidator(r, ValidatorConfig{}, nil)
}

func TestValidateEmptyInput(t *testing.T) {
	r := &fakeRetriever{}
	v := newTestValidator(r)
	for _, q := range []string{"", "   ", "\t"} {
		res := v.Validate(context.Background(), q)
		if res.Accepted || res.Reason != RejectEmptyInput {
			t.Fatalf("Validate(%q): accepted=%v reason=%s, want empty_input reject", q, res.Accepted, res.Reason)
		}
	}
	if r.calls != 0 {
		t.Fatalf("retriever called %d times for empty input", r.calls)
	}
}

func TestValidateDisambiguatesBareQuery(t *testing.T) {
	r := &fakeRetriever{docs: businessDocs(5)}
	v := newTestValidator(r)
	v.Validate(context.Background(), "Fintech")
	if r.seenQuery != "fintech industry" {
		t.Fatalf("query = %q, want %q", r.seenQuery, "fintech industry")
	}

	r2 := &fakeRetriever{docs: businessDocs(5)}
	v2 := newTestValidator(r2)
	v2.Validate(context.Background(), "banking sector")
	if r2.seenQuery != "banking sector" {
		t.Fatalf("qualified query rewritten to %q", r2.seenQuery)
	}
}

func TestValidateRetrievalErrorIsNoResults(t *testing.T) {
	r := &fakeRetriever{err: errors.New("both call paths failed")}
	v := newTestValidator(r)
	res := v.Validate(context.Background(), "fintech")
	if res.Accepted || res.Reason != RejectNoResults {
		t.Fatalf("accepted=%v reason=%s, want no_results reject", res.Accepted, res.Reason)
	}
}

func TestValidateInsufficientResults(t *testing.T) {
	r := &fakeRetriever{docs: businessDocs(3)}
	v := newTestValidator(r)
	res := v.Validate(context.Background(), "semiconductor industry")
	if res.Accepted || res.Reason != RejectInsufficientResults {
		t.Fatalf("accepted=%v reason=%s, want insufficient_results reject", res.Accepted, res.Reason)
	}
}

func TestValidateInsufficientLinks(t *testing.T) {
	docs := businessDocs(6)
	for i := range docs {
		docs[i].URL = "https://en.wikipedia.org/wiki/Same_page"
	}
	r := &fakeRetriever{docs: docs}
	v := newTestValidator(r)
	res := v.Validate(context.Background(), "semiconductor industry")
	if res.Accepted || res.Reason != RejectInsufficientLinks {
		t.Fatalf("accepted=%v reason=%s, want insufficient_links reject", res.Accepted, res.Reason)
	}
}

func TestValidateAcceptsIndustryQuery(t *testing.T) {
	r := &fakeRetriever{docs: businessDocs(5)}
	v := newTestValidator(r)
	res := v.Validate(context.Background(), "semiconductor industry")
	if !res.Accepted {
		t.Fatalf("rejected: %s %s", res.Reason, res.Message)
	}
	if len(res.Links) != 5 {
		t.Fatalf("got %d links, want 5", len(res.Links))
	}
	if len(res.Documents) < 5 {
		t.Fatalf("got %d documents, want >= 5", len(res.Documents))
	}
}

// A query that itself carries industry vocabulary is accepted even when the
// retrieved documents carry none.
func TestValidateQueryScoreBypassesDocSignals(t *testing.T) {
	r := &fakeRetriever{docs: genericDocs(5)}
	v := newTestValidator(r)
	res := v.Validate(context.Background(), "butterfly industry")
	if !res.Accepted {
		t.Fatalf("rejected: %s %s", res.Reason, res.Message)
	}
}

func TestValidateNotIndustryLike(t *testing.T) {
	r := &fakeRetriever{docs: genericDocs(5)}
	v := newTestValidator(r)
	res := v.Validate(context.Background(), "xq7z9")
	if res.Accepted || res.Reason != RejectNotIndustryLike {
		t.Fatalf("accepted=%v reason=%s, want not_industry_like reject", res.Accepted, res.Reason)
	}
}

// An aggressive relevance filter must never starve the pipeline: when fewer
// than MinResults documents pass the filter, the full set is used.
func TestValidateFilterFallsBackToFullSet(t *testing.T) {
	docs := genericDocs(5)
	docs = append(docs, businessDocs(2)...)
	r := &fakeRetriever{docs: docs}
	v := newTestValidator(r)
	res := v.Validate(context.Background(), "butterfly market")
	if !res.Accepted {
		t.Fatalf("rejected: %s %s", res.Reason, res.Message)
	}
	if len(res.Documents) != len(docs) {
		t.Fatalf("got %d documents, want unfiltered %d", len(res.Documents), len(docs))
	}
}

// When enough documents pass the filter, only those are kept.
func TestValidatePrefersFilteredSet(t *testing.T) {
	docs := append(businessDocs(5), genericDocs(3)...)
	r := &fakeRetriever{docs: docs}
	v := newTestValidator(r)
	res := v.Validate(context.Background(), "semiconductor industry")
	if !res.Accepted {
		t.Fatalf("rejected: %s %s", res.Reason, res.Message)
	}
	if len(res.Documents) != 5 {
		t.Fatalf("got %d documents, want filtered 5", len(res.Documents))
	}
}
