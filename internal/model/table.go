package model

// SortColumn is a column the message table can be ordered by.
type SortColumn string

const (
	SortNone      SortColumn = ""
	SortUser      SortColumn = "user"
	SortSentiment SortColumn = "sentiment"
	SortLength    SortColumn = "length"
)

// SortOrder is the direction of a table sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// SentimentFilterAll disables the categorical sentiment filter.
const SentimentFilterAll = "all"

// TableQuery is the interactive table state owned by the caller.
type TableQuery struct {
	Search    string
	Sentiment string
	SortBy    SortColumn
	Order     SortOrder
	PageIndex int
	PageSize  int
}

// TablePage is one page of filtered and sorted messages.
type TablePage struct {
	Messages    []Message `json:"messages" yaml:"messages"`
	Total       int       `json:"total" yaml:"total"`
	PageIndex   int       `json:"page_index" yaml:"page_index"`
	PageSize    int       `json:"page_size" yaml:"page_size"`
	PageCount   int       `json:"page_count" yaml:"page_count"`
	From        int       `json:"from" yaml:"from"`
	To          int       `json:"to" yaml:"to"`
	HasNext     bool      `json:"has_next" yaml:"has_next"`
	HasPrevious bool      `json:"has_previous" yaml:"has_previous"`
}
