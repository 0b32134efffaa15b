package dto

import "github.com/jsamuelsen/growdaily/internal/domain"

// CreateQuoteRequest is the body for creating a custom quote.
type CreateQuoteRequest struct {
	Text   string `json:"text"   validate:"required,notempty,max=1000"`
	Author string `json:"author" validate:"max=200"`
}

// UpdateQuoteRequest is the body for editing a custom quote.
type UpdateQuoteRequest struct {
	Text   string `json:"text"   validate:"required,notempty,max=1000"`
	Author string `json:"author" validate:"max=200"`
}

// QuoteResponse is the API shape of a quote.
type QuoteResponse struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Author     string `json:"author,omitempty"`
	Category   string `json:"category,omitempty"`
	IsCustom   bool   `json:"isCustom"`
	IsFavorite bool   `json:"isFavorite"`
}

// QuoteListResponse wraps a list of quotes.
type QuoteListResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
	Count  int             `json:"count"`
}

// SeedImportRequest is the body for the one-shot seed import.
type SeedImportRequest struct {
	Categories []string `json:"categories" validate:"required,min=1,dive,notempty"`
}

// SeedImportResponse reports the outcome of a seed import.
type SeedImportResponse struct {
	Categories []string `json:"categories"`
	Imported   int      `json:"imported"`
}

// QuoteFromDomain converts a domain quote to its API shape.
func QuoteFromDomain(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:         q.ID,
		Text:       q.Text,
		Author:     q.Author,
		Category:   q.Category,
		IsCustom:   q.IsCustom,
		IsFavorite: q.IsFavorite,
	}
}

// QuoteListFromDomain converts a slice of domain quotes to the list shape.
func QuoteListFromDomain(quotes []*domain.Quote) QuoteListResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, QuoteFromDomain(q))
	}

	return QuoteListResponse{Quotes: out, Count: len(out)}
}
