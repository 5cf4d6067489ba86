package search

import "strings"

// Category selects the SearXNG result category.
type Category string

const (
	// CategoryGeneral is regular web search.
	CategoryGeneral Category = "general"
	// CategoryNews restricts results to news sources.
	CategoryNews Category = "news"
	// CategoryImages restricts results to images.
	CategoryImages Category = "images"
	// CategoryVideos restricts results to videos.
	CategoryVideos Category = "videos"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryNews, CategoryImages, CategoryVideos:
		return true
	default:
		return false
	}
}

// Request describes a single query against the search backend.
type Request struct {
	Query    string
	Category Category
	// Engines restricts the query to the listed engines, nil means provider defaults.
	Engines  []string
	Language string
	PageNo   int
}

// Result captures a single entry returned by a search provider.
// Optional fields are nil when the provider omitted them.
type Result struct {
	Title         *string `json:"title,omitempty"`
	URL           string  `json:"url"`
	Content       *string `json:"content,omitempty"`
	PublishedDate *string `json:"publishedDate,omitempty"`
	ImgSrc        *string `json:"img_src,omitempty"`
	ThumbnailSrc  *string `json:"thumbnail_src,omitempty"`
	Engine        string  `json:"engine,omitempty"`
}

// Response is the decoded provider payload.
type Response struct {
	Results []Result `json:"results"`
}

// ParseEngines splits a comma delimited engine list, dropping blanks.
// It returns nil when nothing remains.
func ParseEngines(raw string) []string {
	var engines []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			engines = append(engines, name)
		}
	}
	return engines
}
