package industry

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Retriever is the external document-retrieval collaborator. Implementations
// own the primary/fallback call-path composition; a returned error means both
// paths failed and is treated by the validator as "no results".
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]Document, error)
}

type ValidatorConfig struct {
	MinResults          int
	MinSignalDocs       int
	MinSignalHitsPerDoc int
}

type Validator struct {
	retriever Retriever
	cfg       ValidatorConfig
	tracer    trace.Tracer
}

// NewValidator wires the validator to its retrieval collaborator. A nil tracer
// provider disables tracing.
func NewValidator(r Retriever, cfg ValidatorConfig, tp trace.TracerProvider) *Validator {
	if cfg.MinResults <= 0 {
		cfg.MinResults = DefaultMinResults
	}
	if cfg.MinSignalDocs <= 0 {
		cfg.MinSignalDocs = DefaultMinSignalDocs
	}
	if cfg.MinSignalHitsPerDoc <= 0 {
		cfg.MinSignalHitsPerDoc = DefaultMinSignalHitsPerDoc
	}
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	return &Validator{retriever: r, cfg: cfg, tracer: tp.Tracer("industrybrief/industry")}
}

// Validate runs the full accept/reject pipeline for an industry query:
// input gate, query disambiguation, retrieval, relevance filtering, link
// selection, and the industry-ness signal gate. It never returns an error;
// every failure mode is a rejection the user can correct by re-entering the
// query.
func (v *Validator) Validate(ctx context.Context, industryQuery string) ValidationResult {
	ctx, span := v.tracer.Start(ctx, "industry.Validate")
	defer span.End()

	if !HasRealText(industryQuery) {
		return reject(RejectEmptyInput, "Please enter an industry (required).")
	}

	query := disambiguate(industryQuery)
	span.SetAttributes(attribute.String("industry.query", query))

	docs, err := v.retrieve(ctx, query)
	if err != nil {
		log.Printf("industry validate: retrieval failed for %q: %v", query, err)
		docs = nil
	}
	if len(docs) == 0 {
		return reject(RejectNoResults, fmt.Sprintf(
			"No encyclopedia results for %q. Try a clearer industry term (e.g., 'semiconductor industry', 'banking sector').", industryQuery))
	}

	chosen := v.filterRelevant(docs)
	span.SetAttributes(
		attribute.Int("industry.docs_retrieved", len(docs)),
		attribute.Int("industry.docs_chosen", len(chosen)),
	)
	if len(chosen) < v.cfg.MinResults {
		return reject(RejectInsufficientResults, fmt.Sprintf(
			"Not enough results for %q. Try a clearer industry term (e.g., 'semiconductor industry', 'banking sector').", industryQuery))
	}

	links := SelectLinks(chosen)
	if len(links) < DefaultMinResults {
		return reject(RejectInsufficientLinks, fmt.Sprintf(
			"Couldn't extract 5 distinct source URLs for %q. Try adding 'industry', 'sector', or a more specific term.", industryQuery))
	}

	// The gate scores the original query text, not the disambiguated one.
	queryScore := ScoreSignals(industryQuery)
	signalDocs := 0
	for _, d := range chosen[:v.cfg.MinResults] {
		if ScoreSignals(d.Title+" "+scoringSnippet(d)) >= v.cfg.MinSignalHitsPerDoc {
			signalDocs++
		}
	}
	span.SetAttributes(
		attribute.Int("industry.query_score", queryScore),
		attribute.Int("industry.signal_docs", signalDocs),
	)
	if queryScore == 0 && signalDocs < v.cfg.MinSignalDocs {
		return reject(RejectNotIndustryLike, fmt.Sprintf(
			"%q doesn't look like an industry term based on the retrieved results. Try phrasing it like 'X industry' / 'X sector' / 'X market'.", industryQuery))
	}

	return ValidationResult{
		Accepted:  true,
		Message:   "OK",
		Documents: chosen,
		Links:     links,
	}
}

func (v *Validator) retrieve(ctx context.Context, query string) ([]Document, error) {
	ctx, span := v.tracer.Start(ctx, "industry.retrieve")
	defer span.End()
	return v.retriever.Retrieve(ctx, query)
}

// filterRelevant keeps documents whose title+snippet carries industry
// vocabulary. If filtering starves the set below MinResults the full set is
// used instead: the filter must never block the pipeline from reaching five
// links.
func (v *Validator) filterRelevant(docs []Document) []Document {
	filtered := make([]Document, 0, len(docs))
	for _, d := range docs {
		if ScoreSignals(d.Title+" "+scoringSnippet(d)) >= v.cfg.MinSignalHitsPerDoc {
			filtered = append(filtered, d)
		}
	}
	if len(filtered) >= v.cfg.MinResults {
		return filtered
	}
	return docs
}

// scoringSnippet bounds how much document text feeds the signal scorer. The
// full body is preferred; the short-form extract stands in when the body is
// absent.
func scoringSnippet(d Document) string {
	text := d.Body
	if text == "" {
		text = d.Extract
	}
	if len(text) > ScoringSnippetChars {
		text = text[:ScoringSnippetChars]
	}
	return text
}

// disambiguate appends " industry" to queries that carry none of the literal
// qualifiers, biasing retrieval toward industry pages for bare nouns like
// "fintech".
func disambiguate(industryQuery string) string {
	q := Normalize(industryQuery)
	for _, qualifier := range []string{"industry", "sector", "market"} {
		if strings.Contains(q, qualifier) {
			return q
		}
	}
	return q + " industry"
}

func reject(reason RejectReason, message string) ValidationResult {
	return ValidationResult{Reason: reason, Message: message}
}
