package usecase

import (
	"net/url"
	"strconv"
	"strings"
)

// PaginationMetadata describes a page window with navigation links.
type PaginationMetadata struct {
	Total    int     `json:"total"`
	Pages    int     `json:"pages"`
	Page     int     `json:"page"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// NewPaginationMetadata builds page counters and next/previous links against
// baseURL. The sort parameter is only carried over when the caller set one.
func NewPaginationMetadata(baseURL string, page PokemonPage) PaginationMetadata {
	limit := page.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}

	meta := PaginationMetadata{
		Total: page.Total,
		Pages: page.Total / limit,
		Page:  page.Offset/limit + 1,
	}
	if page.Total%limit != 0 {
		meta.Pages++
	}

	if page.Offset < page.Total-limit {
		link := pageLink(baseURL, limit, page.Offset+limit, page.Sort)
		meta.Next = &link
	}
	if page.Offset > 0 {
		link := pageLink(baseURL, limit, max(0, page.Offset-limit), page.Sort)
		meta.Previous = &link
	}

	return meta
}

func pageLink(baseURL string, limit, offset int, sort string) string {
	var b strings.Builder
	b.WriteString(baseURL)
	b.WriteString("?limit=")
	b.WriteString(strconv.Itoa(limit))
	b.WriteString("&offset=")
	b.WriteString(strconv.Itoa(offset))
	if sort = strings.TrimSpace(sort); sort != "" {
		b.WriteString("&sort=")
		b.WriteString(url.QueryEscape(sort))
	}
	return b.String()
}
