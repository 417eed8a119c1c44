// Package analytics turns a message collection into dashboard aggregates.
//
// Every function here is pure: it reads its input, never mutates it, and
// returns freshly allocated results, so callers may share one dataset across
// goroutines without locking.
package analytics

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/capitalize-ai/message-analytics/internal/model"
)

// MaxLengthEntries bounds the per-user length ranking.
const MaxLengthEntries = 10

type sentimentStyle struct {
	sentiment model.Sentiment
	name      string
	color     string
}

// sentimentStyles is the display order and palette of the sentiment chart.
var sentimentStyles = [3]sentimentStyle{
	{sentiment: model.SentimentPositive, name: "Positive", color: "#10b981"},
	{sentiment: model.SentimentNeutral, name: "Neutral", color: "#6b7280"},
	{sentiment: model.SentimentNegative, name: "Negative", color: "#ef4444"},
}

// CalculateSummaryStats computes the message count, the rounded mean length
// and the per-sentiment tally. Unknown sentiment labels are not counted.
func CalculateSummaryStats(messages []model.Message) model.SummaryStats {
	stats := model.SummaryStats{TotalMessages: len(messages)}
	if len(messages) == 0 {
		return stats
	}

	total := 0
	for _, msg := range messages {
		total += msg.Length
		switch msg.Sentiment {
		case model.SentimentPositive:
			stats.SentimentBreakdown.Positive++
		case model.SentimentNeutral:
			stats.SentimentBreakdown.Neutral++
		case model.SentimentNegative:
			stats.SentimentBreakdown.Negative++
		}
	}
	stats.AverageLength = roundHalfUp(float64(total) / float64(len(messages)))

	return stats
}

// ProcessSentimentData returns the sentiment chart series: always three
// entries, positive then neutral then negative.
func ProcessSentimentData(messages []model.Message) []model.SentimentData {
	breakdown := CalculateSummaryStats(messages).SentimentBreakdown

	data := make([]model.SentimentData, 0, len(sentimentStyles))
	for _, style := range sentimentStyles {
		data = append(data, model.SentimentData{
			Name:  style.name,
			Value: breakdown.Count(style.sentiment),
			Color: style.color,
		})
	}
	return data
}

type userLength struct {
	user  string
	total int
	count int
}

// ProcessMessageLengthData ranks users by their rounded mean message length,
// longest first, and keeps the top MaxLengthEntries. Users with equal means
// keep the order in which they first appear in messages.
func ProcessMessageLengthData(messages []model.Message) []model.MessageLengthData {
	index := make(map[string]int)
	var groups []userLength
	for _, msg := range messages {
		i, ok := index[msg.User]
		if !ok {
			i = len(groups)
			index[msg.User] = i
			groups = append(groups, userLength{user: msg.User})
		}
		groups[i].total += msg.Length
		groups[i].count++
	}

	data := make([]model.MessageLengthData, 0, len(groups))
	for _, g := range groups {
		data = append(data, model.MessageLengthData{
			User:   g.user,
			Length: roundHalfUp(float64(g.total) / float64(g.count)),
		})
	}

	slices.SortStableFunc(data, func(a, b model.MessageLengthData) int {
		return b.Length - a.Length
	})

	if len(data) > MaxLengthEntries {
		data = data[:MaxLengthEntries]
	}
	return data
}

// FilterMessages keeps the messages whose text, user or sentiment contains
// searchTerm, ignoring case. An empty term returns messages as given.
func FilterMessages(messages []model.Message, searchTerm string) []model.Message {
	if searchTerm == "" {
		return messages
	}

	needle := strings.ToLower(searchTerm)
	filtered := make([]model.Message, 0, len(messages))
	for _, msg := range messages {
		if matches(msg, needle) {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

func matches(msg model.Message, needle string) bool {
	return strings.Contains(strings.ToLower(msg.Text), needle) ||
		strings.Contains(strings.ToLower(msg.User), needle) ||
		strings.Contains(strings.ToLower(string(msg.Sentiment)), needle)
}

// FormatSentimentPercentage renders value/total as a whole percentage such
// as "33%". A zero total yields "0%". Values above total are not clamped.
func FormatSentimentPercentage(value, total int) string {
	if total == 0 {
		return "0%"
	}
	pct := roundHalfUp(float64(value) / float64(total) * 100)
	return strconv.Itoa(pct) + "%"
}

// roundHalfUp rounds to the nearest integer with halves going up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
