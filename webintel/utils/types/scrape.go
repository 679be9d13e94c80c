package types

import (
	"time"
)

// MaxContentChars bounds ExtractedContent.Content, counted in runes.
const MaxContentChars = 8000

type ExtractedContent struct {
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
	Content         string `json:"content"`
}

// ArchivedPage is the object layout kept in the page archive.
type ArchivedPage struct {
	URL string `json:"url"`
	ExtractedContent
	Timestamp time.Time `json:"timestamp"`
}

type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

type AnalyzeRequest struct {
	URL string `json:"url"`
}

type QuestionRequest struct {
	URL      string `json:"url"`
	Question string `json:"question"`
}

type DirectQuestionRequest struct {
	Question    string   `json:"question"`
	Temperature *float64 `json:"temperature,omitempty"`
}

type DirectAnswer struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
