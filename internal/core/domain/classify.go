package domain

// Classification sources.
const (
	// SourceRAG indicates the category was taken from a retrieved record.
	SourceRAG = "rag"

	// SourceFallback indicates no stored record was close enough and the
	// caller should use another classification path.
	SourceFallback = "fallback"
)

// QueryInput is a partial record used to classify an unverified receipt.
// Only the descriptive text fields participate in similarity matching;
// IssueDate and TotalAmount are accepted for parity with Metadata but do
// not influence the query.
type QueryInput struct {
	StoreName       string  `json:"store_name,omitempty"`
	ItemDescription string  `json:"item_description,omitempty"`
	Description     string  `json:"description,omitempty"`
	IssueDate       string  `json:"issue_date,omitempty"`
	TotalAmount     float64 `json:"total_amount,omitempty"`
}

// ComposeQuery renders the searchable text for the query, using the same
// field order as ComposeDocument. An empty result means the query has no
// usable text fields and must not be searched.
func (q QueryInput) ComposeQuery() string {
	return ComposeDocument(Metadata{
		StoreName:       q.StoreName,
		ItemDescription: q.ItemDescription,
		Description:     q.Description,
	})
}

// Classification is the outcome of a similarity search over stored records.
// Exactly one of the two sources is produced per query.
type Classification struct {
	// Success is false when an error prevented a meaningful search
	// (empty query, store or embedding failure).
	Success bool `json:"success"`

	// Category is the suggested classification label, nil on fallback.
	Category *string `json:"category"`

	// Subject is the matched record's description, nil on fallback.
	Subject *string `json:"subject"`

	// Similarity is the best match's cosine similarity, rounded to four
	// decimal places. Reported even below the threshold so callers can
	// log near-misses.
	Similarity float64 `json:"similarity"`

	// Source is SourceRAG when the match was accepted, SourceFallback
	// otherwise.
	Source string `json:"source"`

	// MatchedStore and MatchedItem identify the accepted record for audit.
	MatchedStore string `json:"matched_store,omitempty"`
	MatchedItem  string `json:"matched_item,omitempty"`

	// Error carries a human-readable message when Success is false.
	Error string `json:"error,omitempty"`
}
