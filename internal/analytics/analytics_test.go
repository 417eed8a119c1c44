package analytics

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/capitalize-ai/message-analytics/internal/model"
)

func fixture() []model.Message {
	return []model.Message{
		{ID: "1", User: "user_01", Text: "Great work team!", Sentiment: model.SentimentPositive, Length: 16},
		{ID: "2", User: "user_01", Text: "Having some database issues today.", Sentiment: model.SentimentNegative, Length: 34},
		{ID: "3", User: "user_01", Text: "Code review completed successfully.", Sentiment: model.SentimentPositive, Length: 34},
		{ID: "4", User: "user_02", Text: "Meeting at 3 PM.", Sentiment: model.SentimentNeutral, Length: 16},
		{ID: "5", User: "user_02", Text: "Excellent frontend progress!", Sentiment: model.SentimentPositive, Length: 28},
		{ID: "6", User: "user_03", Text: "Feeling overwhelmed with workload.", Sentiment: model.SentimentNegative, Length: 34},
	}
}

func TestCalculateSummaryStats(t *testing.T) {
	t.Parallel()

	got := CalculateSummaryStats(fixture())
	want := model.SummaryStats{
		TotalMessages:      6,
		AverageLength:      27,
		SentimentBreakdown: model.SentimentBreakdown{Positive: 3, Neutral: 1, Negative: 2},
	}
	if got != want {
		t.Fatalf("CalculateSummaryStats=%+v, want %+v", got, want)
	}
}

func TestCalculateSummaryStats_Empty(t *testing.T) {
	t.Parallel()

	for _, in := range [][]model.Message{nil, {}} {
		got := CalculateSummaryStats(in)
		if got != (model.SummaryStats{}) {
			t.Fatalf("CalculateSummaryStats(%v)=%+v, want zero value", in, got)
		}
	}
}

func TestCalculateSummaryStats_RoundsHalfUp(t *testing.T) {
	t.Parallel()

	msgs := []model.Message{
		{User: "a", Sentiment: model.SentimentNeutral, Length: 1},
		{User: "b", Sentiment: model.SentimentNeutral, Length: 2},
	}
	if got := CalculateSummaryStats(msgs).AverageLength; got != 2 {
		t.Fatalf("AverageLength=%d, want 2", got)
	}

	msgs = append(msgs, model.Message{User: "c", Sentiment: model.SentimentNeutral, Length: 2})
	if got := CalculateSummaryStats(msgs).AverageLength; got != 2 {
		t.Fatalf("AverageLength=%d, want 2", got)
	}
}

func TestCalculateSummaryStats_BreakdownSumsToTotal(t *testing.T) {
	t.Parallel()

	msgs := manyUsers(37)
	stats := CalculateSummaryStats(msgs)
	b := stats.SentimentBreakdown
	if sum := b.Positive + b.Neutral + b.Negative; sum != stats.TotalMessages {
		t.Fatalf("breakdown sum=%d, total=%d", sum, stats.TotalMessages)
	}
}

func TestCalculateSummaryStats_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := fixture()
	before := fixture()
	CalculateSummaryStats(in)
	ProcessMessageLengthData(in)
	FilterMessages(in, "user")
	if !reflect.DeepEqual(in, before) {
		t.Fatalf("input mutated: %+v", in)
	}
}

func TestProcessSentimentData(t *testing.T) {
	t.Parallel()

	got := ProcessSentimentData(fixture())
	want := []model.SentimentData{
		{Name: "Positive", Value: 3, Color: "#10b981"},
		{Name: "Neutral", Value: 1, Color: "#6b7280"},
		{Name: "Negative", Value: 2, Color: "#ef4444"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ProcessSentimentData=%+v, want %+v", got, want)
	}
}

func TestProcessSentimentData_KeepsZeroEntries(t *testing.T) {
	t.Parallel()

	got := ProcessSentimentData(nil)
	if len(got) != 3 {
		t.Fatalf("len=%d, want 3", len(got))
	}
	for i, name := range []string{"Positive", "Neutral", "Negative"} {
		if got[i].Name != name || got[i].Value != 0 {
			t.Fatalf("entry %d=%+v, want %s with value 0", i, got[i], name)
		}
	}
}

func TestProcessSentimentData_MatchesBreakdown(t *testing.T) {
	t.Parallel()

	msgs := manyUsers(23)
	b := CalculateSummaryStats(msgs).SentimentBreakdown
	got := ProcessSentimentData(msgs)
	if got[0].Value != b.Positive || got[1].Value != b.Neutral || got[2].Value != b.Negative {
		t.Fatalf("series %+v does not match breakdown %+v", got, b)
	}
}

func TestProcessMessageLengthData(t *testing.T) {
	t.Parallel()

	got := ProcessMessageLengthData(fixture())
	want := []model.MessageLengthData{
		{User: "user_03", Length: 34},
		{User: "user_01", Length: 28},
		{User: "user_02", Length: 22},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ProcessMessageLengthData=%+v, want %+v", got, want)
	}
}

func TestProcessMessageLengthData_SingleUserAverage(t *testing.T) {
	t.Parallel()

	msgs := []model.Message{
		{ID: "1", User: "user_01", Text: "Great work team, we nailed the deadline!", Sentiment: model.SentimentPositive, Length: 38},
		{ID: "26", User: "user_01", Text: "Just finished the code review - looks solid!", Sentiment: model.SentimentPositive, Length: 43},
		{ID: "27", User: "user_01", Text: "Running into some issues with the database connection.", Sentiment: model.SentimentNegative, Length: 54},
	}
	got := ProcessMessageLengthData(msgs)
	want := []model.MessageLengthData{{User: "user_01", Length: 45}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ProcessMessageLengthData=%+v, want %+v", got, want)
	}
}

func TestProcessMessageLengthData_LimitsToTopTen(t *testing.T) {
	t.Parallel()

	msgs := manyUsers(15)
	got := ProcessMessageLengthData(msgs)
	if len(got) != MaxLengthEntries {
		t.Fatalf("len=%d, want %d", len(got), MaxLengthEntries)
	}
	// user_15 has the longest message (34), user_06 is the tenth longest (25).
	if got[0].User != "user_15" || got[0].Length != 34 {
		t.Fatalf("first=%+v, want user_15/34", got[0])
	}
	if got[9].User != "user_06" || got[9].Length != 25 {
		t.Fatalf("last=%+v, want user_06/25", got[9])
	}
}

func TestProcessMessageLengthData_SortedDescending(t *testing.T) {
	t.Parallel()

	got := ProcessMessageLengthData(manyUsers(40))
	for i := 1; i < len(got); i++ {
		if got[i-1].Length < got[i].Length {
			t.Fatalf("not descending at %d: %+v", i, got)
		}
	}
}

func TestProcessMessageLengthData_TiesKeepFirstAppearance(t *testing.T) {
	t.Parallel()

	msgs := []model.Message{
		{User: "carol", Sentiment: model.SentimentNeutral, Length: 10},
		{User: "alice", Sentiment: model.SentimentNeutral, Length: 20},
		{User: "bob", Sentiment: model.SentimentNeutral, Length: 10},
		{User: "carol", Sentiment: model.SentimentNeutral, Length: 10},
		{User: "dave", Sentiment: model.SentimentNeutral, Length: 9},
		{User: "dave", Sentiment: model.SentimentNeutral, Length: 10},
	}
	got := ProcessMessageLengthData(msgs)
	want := []model.MessageLengthData{
		{User: "alice", Length: 20},
		{User: "carol", Length: 10},
		{User: "bob", Length: 10},
		{User: "dave", Length: 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ProcessMessageLengthData=%+v, want %+v", got, want)
	}
}

func TestProcessMessageLengthData_Empty(t *testing.T) {
	t.Parallel()

	got := ProcessMessageLengthData(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("ProcessMessageLengthData(nil)=%#v, want empty slice", got)
	}
}

func TestProcessMessageLengthData_UserMatchIsExact(t *testing.T) {
	t.Parallel()

	msgs := []model.Message{
		{User: "User_01", Sentiment: model.SentimentNeutral, Length: 10},
		{User: "user_01", Sentiment: model.SentimentNeutral, Length: 20},
	}
	if got := ProcessMessageLengthData(msgs); len(got) != 2 {
		t.Fatalf("len=%d, want 2 distinct users: %+v", len(got), got)
	}
}

func TestFilterMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		term    string
		wantIDs []string
	}{
		{name: "text", term: "database", wantIDs: []string{"2"}},
		{name: "user", term: "user_01", wantIDs: []string{"1", "2", "3"}},
		{name: "user upper case", term: "USER_01", wantIDs: []string{"1", "2", "3"}},
		{name: "sentiment", term: "positive", wantIDs: []string{"1", "3", "5"}},
		{name: "mixed case text", term: "MeEtInG", wantIDs: []string{"4"}},
		{name: "no match", term: "kubernetes", wantIDs: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FilterMessages(fixture(), tt.term)
			ids := make([]string, 0, len(got))
			for _, m := range got {
				ids = append(ids, m.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Fatalf("FilterMessages(%q) ids=%v, want %v", tt.term, ids, tt.wantIDs)
			}
		})
	}
}

func TestFilterMessages_EmptyTermReturnsInput(t *testing.T) {
	t.Parallel()

	in := fixture()
	got := FilterMessages(in, "")
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("FilterMessages(\"\")=%+v, want input", got)
	}
}

func TestFilterMessages_CaseInsensitiveEquivalence(t *testing.T) {
	t.Parallel()

	in := fixture()
	if !reflect.DeepEqual(FilterMessages(in, "USER_01"), FilterMessages(in, "user_01")) {
		t.Fatalf("upper and lower case searches differ")
	}
}

func TestFilterMessages_Unicode(t *testing.T) {
	t.Parallel()

	in := []model.Message{
		{ID: "1", User: "émile", Text: "Ça marche très bien", Sentiment: model.SentimentPositive, Length: 19},
		{ID: "2", User: "zoë", Text: "Нужна помощь", Sentiment: model.SentimentNeutral, Length: 12},
	}
	if got := FilterMessages(in, "ÉMILE"); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("FilterMessages(ÉMILE)=%+v", got)
	}
	if got := FilterMessages(in, "ПОМОЩЬ"); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("FilterMessages(ПОМОЩЬ)=%+v", got)
	}
}

func TestFormatSentimentPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value, total int
		want         string
	}{
		{3, 6, "50%"},
		{1, 6, "17%"},
		{2, 6, "33%"},
		{1, 3, "33%"},
		{2, 3, "67%"},
		{5, 0, "0%"},
		{0, 0, "0%"},
		{0, 4, "0%"},
		{1, 8, "13%"},
		{3, 2, "150%"},
	}

	for _, tt := range tests {
		if got := FormatSentimentPercentage(tt.value, tt.total); got != tt.want {
			t.Fatalf("FormatSentimentPercentage(%d, %d)=%q, want %q", tt.value, tt.total, got, tt.want)
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	t.Parallel()

	in := manyUsers(50)
	want := ProcessMessageLengthData(in)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			CalculateSummaryStats(in)
			ProcessSentimentData(in)
			FilterMessages(in, "user_1")
			if got := ProcessMessageLengthData(in); !reflect.DeepEqual(got, want) {
				t.Errorf("concurrent result differs: %+v", got)
			}
		}()
	}
	wg.Wait()
}

// manyUsers builds n single-message users user_01..user_n with lengths 20+i.
func manyUsers(n int) []model.Message {
	msgs := make([]model.Message, 0, n)
	for i := 0; i < n; i++ {
		msgs = append(msgs, model.Message{
			ID:        fmt.Sprintf("%d", i+1),
			User:      fmt.Sprintf("user_%02d", i+1),
			Text:      fmt.Sprintf("Message %d", i+1),
			Sentiment: model.Sentiments[i%3],
			Length:    20 + i,
		})
	}
	return msgs
}
