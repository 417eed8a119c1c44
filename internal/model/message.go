// Package model defines data structures for the message analytics service.
package model

// Sentiment is the sentiment label attached to a message.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Sentiments lists every sentiment in display order.
var Sentiments = [3]Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// Valid reports whether s is one of the known sentiment labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	default:
		return false
	}
}

// Message is a single team communication record.
type Message struct {
	ID        string    `json:"id" yaml:"id"`
	User      string    `json:"user" yaml:"user"`
	Text      string    `json:"text" yaml:"text"`
	Sentiment Sentiment `json:"sentiment" yaml:"sentiment"`

	// Length is the character count supplied with the record.
	Length int `json:"length" yaml:"length"`
}
