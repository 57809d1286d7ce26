package industry

const (
	// DefaultMinResults is the number of documents (and distinct links) a query
	// must produce before it can be accepted.
	DefaultMinResults = 5

	// DefaultMinSignalDocs is how many of the top documents must individually
	// carry industry vocabulary when the query itself carries none.
	DefaultMinSignalDocs = 2

	// DefaultMinSignalHitsPerDoc is the per-document vocabulary threshold used
	// by the relevance filter and the industry-ness gate.
	DefaultMinSignalHitsPerDoc = 1

	// ScoringSnippetChars bounds how much of a document body is scored.
	ScoringSnippetChars = 500

	// MaxReportWords is the hard ceiling on the synthesized report.
	MaxReportWords = 500
)

// PlaceholderTitle stands in for documents whose metadata carries no title.
const PlaceholderTitle = "Wikipedia page"

// Document is one retrieved encyclopedia article. Extract is the short-form
// text (search snippet or intro extract) when the source provides one; Body is
// the full retrieved text. Either may be empty.
type Document struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Extract string `json:"extract,omitempty"`
	Body    string `json:"body,omitempty"`
}

// Link is one (title, url) pair surfaced to the caller.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type RejectReason string

const (
	RejectEmptyInput          RejectReason = "empty_input"
	RejectNoResults           RejectReason = "no_results"
	RejectInsufficientResults RejectReason = "insufficient_results"
	RejectInsufficientLinks   RejectReason = "insufficient_links"
	RejectNotIndustryLike     RejectReason = "not_industry_like"
)

// ValidationResult is the all-or-nothing outcome of Validate. Accepted results
// always carry at least MinResults documents and exactly five distinct links;
// rejected results carry a reason and a user-correctable message.
type ValidationResult struct {
	Accepted  bool         `json:"accepted"`
	Reason    RejectReason `json:"reason,omitempty"`
	Message   string       `json:"message"`
	Documents []Document   `json:"documents,omitempty"`
	Links     []Link       `json:"links,omitempty"`
}
