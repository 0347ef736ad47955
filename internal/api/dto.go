package api

import (
	"github.com/starford/raido/internal/codeservice"
	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/models"
)

// Entry is a single (code, path) pair (aliased from the index layer).
type Entry = index.Entry

// CodeInfo is the copy-code response (aliased from the domain layer).
type CodeInfo = codeservice.CodeInfo

// OpenRequest is the request body for opening a file by code.
type OpenRequest struct {
	Code string `json:"code"`
}

// ListResponse wraps the full entry listing.
type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// SearchResponse wraps prefix-search suggestions. Query echoes the
// canonical formatted form of the raw input.
type SearchResponse struct {
	Query   string  `json:"query"`
	Results []Entry `json:"results"`
}

// RecentsResponse wraps the recently-opened listing.
type RecentsResponse struct {
	Recents []models.RecentEntry `json:"recents"`
}
