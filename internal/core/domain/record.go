package domain

import (
	"strings"
	"time"
)

// Metadata holds the structured fields describing a receipt record.
type Metadata struct {
	// StoreName is the merchant or vendor name on the receipt.
	StoreName string `json:"store_name"`

	// ItemDescription describes the purchased item or line items.
	ItemDescription string `json:"item_description"`

	// Description is a free-text annotation or subject line.
	Description string `json:"description"`

	// IssueDate is the receipt date in ISO format (YYYY-MM-DD).
	IssueDate string `json:"issue_date"`

	// TotalAmount is the receipt total.
	TotalAmount float64 `json:"total_amount"`

	// Category is the classification label (account category).
	Category string `json:"category"`

	// Verified reports whether a human confirmed the category.
	Verified bool `json:"verified"`
}

// PartialMetadata is an optional-field variant of Metadata used for updates.
// A nil field leaves the stored value unchanged; a non-nil field fully
// replaces it.
type PartialMetadata struct {
	StoreName       *string  `json:"store_name,omitempty"`
	ItemDescription *string  `json:"item_description,omitempty"`
	Description     *string  `json:"description,omitempty"`
	IssueDate       *string  `json:"issue_date,omitempty"`
	TotalAmount     *float64 `json:"total_amount,omitempty"`
	Category        *string  `json:"category,omitempty"`
	Verified        *bool    `json:"verified,omitempty"`
}

// Apply returns a copy of base with every supplied field overwritten.
// Unsupplied fields retain their prior values (shallow merge).
func (p PartialMetadata) Apply(base Metadata) Metadata {
	if p.StoreName != nil {
		base.StoreName = *p.StoreName
	}
	if p.ItemDescription != nil {
		base.ItemDescription = *p.ItemDescription
	}
	if p.Description != nil {
		base.Description = *p.Description
	}
	if p.IssueDate != nil {
		base.IssueDate = *p.IssueDate
	}
	if p.TotalAmount != nil {
		base.TotalAmount = *p.TotalAmount
	}
	if p.Category != nil {
		base.Category = *p.Category
	}
	if p.Verified != nil {
		base.Verified = *p.Verified
	}
	return base
}

// IsEmpty reports whether no fields are supplied.
func (p PartialMetadata) IsEmpty() bool {
	return p.StoreName == nil && p.ItemDescription == nil && p.Description == nil &&
		p.IssueDate == nil && p.TotalAmount == nil && p.Category == nil && p.Verified == nil
}

// Record is the unit of storage: a verified classification example with its
// derived search document and embedding.
type Record struct {
	// ID is the caller-supplied unique identifier. The store never
	// generates identifiers.
	ID string `json:"id"`

	// Document is the canonical text rendered from Metadata by
	// ComposeDocument. It is never set independently.
	Document string `json:"document"`

	// Metadata contains the structured receipt fields.
	Metadata Metadata `json:"metadata"`

	// Embedding is the vector for Document, produced by the embedding
	// collaborator. Never set independently.
	Embedding []float32 `json:"-"`

	// CreatedAt is when the record was first stored.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the record was last written.
	UpdatedAt time.Time `json:"updated_at"`
}

// ExportedRecord is the portable representation used by the export
// operation: the record without its embedding or timestamps.
type ExportedRecord struct {
	ID       string   `json:"id"`
	Document string   `json:"document"`
	Metadata Metadata `json:"metadata"`
}

// Stats summarises the stored records.
type Stats struct {
	Total      int `json:"total"`
	Verified   int `json:"verified"`
	Unverified int `json:"unverified"`
	StoreCount int `json:"store_count"`
}

// ComposeDocument renders the canonical search text for metadata: the
// space-joined concatenation of the non-empty descriptive fields, in fixed
// order. Empty metadata yields an empty string.
//
// The same function is applied on every write, so a stored document always
// matches its metadata.
func ComposeDocument(m Metadata) string {
	parts := make([]string, 0, 3)
	for _, field := range []string{m.StoreName, m.ItemDescription, m.Description} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
