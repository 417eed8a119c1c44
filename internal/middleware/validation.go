package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/capitalize-ai/message-analytics/internal/model"
)

// MaxSearchTermLength bounds the free-text table search.
const MaxSearchTermLength = 256

// ValidateSearchTerm validates the table search term.
func ValidateSearchTerm(term string) error {
	if !utf8.ValidString(term) {
		return errors.New("search must be valid UTF-8")
	}
	if utf8.RuneCountInString(term) > MaxSearchTermLength {
		return errors.New("search exceeds maximum length")
	}
	return nil
}

// ValidateSentimentFilter accepts "", "all" or a known sentiment label.
func ValidateSentimentFilter(filter string) error {
	if filter == "" || filter == model.SentimentFilterAll {
		return nil
	}
	if !model.Sentiment(filter).Valid() {
		return fmt.Errorf("invalid sentiment filter %q", filter)
	}
	return nil
}

// ValidateSortColumn validates a table sort column.
func ValidateSortColumn(column string) error {
	switch model.SortColumn(column) {
	case model.SortNone, model.SortUser, model.SortSentiment, model.SortLength:
		return nil
	default:
		return fmt.Errorf("invalid sort column %q", column)
	}
}

// ValidateSortOrder validates a table sort direction.
func ValidateSortOrder(order string) error {
	switch model.SortOrder(order) {
	case "", model.OrderAsc, model.OrderDesc:
		return nil
	default:
		return fmt.Errorf("invalid sort order %q", order)
	}
}

// ParsePositiveInt parses an optional positive integer query value.
// An empty value yields def.
func ParsePositiveInt(name, value string, def int) (int, error) {
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return n, nil
}
