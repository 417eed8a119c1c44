package analytics

import (
	"cmp"
	"slices"
	"strings"

	"github.com/capitalize-ai/message-analytics/internal/model"
)

const (
	// DefaultPageSize is the table page size when the query leaves it unset.
	DefaultPageSize = 10
	// MaxPageSize caps the table page size.
	MaxPageSize = 100
)

// Query applies the table state to messages: the search filter AND the
// sentiment filter, then a stable sort, then pagination. The input slice is
// never reordered.
func Query(messages []model.Message, q model.TableQuery) model.TablePage {
	rows := FilterMessages(messages, q.Search)
	rows = filterSentiment(rows, q.Sentiment)
	rows = sortRows(rows, q.SortBy, q.Order)

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	size = min(size, MaxPageSize)
	pageIndex := max(q.PageIndex, 0)

	total := len(rows)
	page := model.TablePage{
		Messages:  []model.Message{},
		Total:     total,
		PageIndex: pageIndex,
		PageSize:  size,
		PageCount: (total + size - 1) / size,
	}

	// pageIndex*size stays below total+size inside this branch.
	if pageIndex < page.PageCount {
		start := pageIndex * size
		end := min(start+size, total)
		page.Messages = slices.Clone(rows[start:end])
		page.From = start + 1
		page.To = end
	}
	page.HasPrevious = pageIndex > 0
	page.HasNext = pageIndex < page.PageCount-1

	return page
}

func filterSentiment(messages []model.Message, sentiment string) []model.Message {
	if sentiment == "" || sentiment == model.SentimentFilterAll {
		return messages
	}

	filtered := make([]model.Message, 0, len(messages))
	for _, msg := range messages {
		if string(msg.Sentiment) == sentiment {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

func sortRows(messages []model.Message, column model.SortColumn, order model.SortOrder) []model.Message {
	var compare func(a, b model.Message) int
	switch column {
	case model.SortUser:
		compare = func(a, b model.Message) int { return strings.Compare(a.User, b.User) }
	case model.SortSentiment:
		compare = func(a, b model.Message) int { return strings.Compare(string(a.Sentiment), string(b.Sentiment)) }
	case model.SortLength:
		compare = func(a, b model.Message) int { return cmp.Compare(a.Length, b.Length) }
	default:
		return messages
	}

	sorted := slices.Clone(messages)
	if order == model.OrderDesc {
		slices.SortStableFunc(sorted, func(a, b model.Message) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(sorted, compare)
	}
	return sorted
}
