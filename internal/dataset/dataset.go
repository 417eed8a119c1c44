// Package dataset loads message records from files into an in-memory store.
package dataset

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"gopkg.in/yaml.v3"

	"github.com/capitalize-ai/message-analytics/internal/model"
)

// SeedSource names the bundled dataset.
const SeedSource = "seed"

var (
	// ErrUnsupportedFormat is returned for dataset files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrInvalidRecord is returned when a record falls outside the message contract.
	ErrInvalidRecord = errors.New("invalid message record")
)

//go:embed seed.json
var seedJSON []byte

// record is the on-disk shape of a message. Id and length are optional.
type record struct {
	ID        string `json:"id" yaml:"id"`
	User      string `json:"user" yaml:"user"`
	Text      string `json:"text" yaml:"text"`
	Sentiment string `json:"sentiment" yaml:"sentiment"`
	Length    *int   `json:"length" yaml:"length"`
}

// Load reads messages from path. The format is chosen by file extension:
// .json, .yaml/.yml, or .db/.sqlite/.sqlite3 (a "messages" table). An empty
// path loads the bundled seed dataset.
func Load(ctx context.Context, path string) ([]model.Message, error) {
	if path == "" {
		return decodeJSON(seedJSON)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		return decodeJSON(data)
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		return decodeYAML(data)
	case ".db", ".sqlite", ".sqlite3":
		return loadSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func decodeJSON(data []byte) ([]model.Message, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode json dataset: %w", err)
	}
	return toMessages(records)
}

func decodeYAML(data []byte) ([]model.Message, error) {
	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode yaml dataset: %w", err)
	}
	return toMessages(records)
}

func loadSQLite(ctx context.Context, path string) ([]model.Message, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open sqlite dataset: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite dataset: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT id, user, text, sentiment, length
		FROM messages
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var records []record
	for rows.Next() {
		var (
			id     sql.NullString
			r      record
			length sql.NullInt64
		)
		if err := rows.Scan(&id, &r.User, &r.Text, &r.Sentiment, &length); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		r.ID = id.String
		if length.Valid {
			n := int(length.Int64)
			r.Length = &n
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return toMessages(records)
}

func toMessages(records []record) ([]model.Message, error) {
	messages := make([]model.Message, 0, len(records))
	for i, r := range records {
		msg, err := r.toMessage()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r record) toMessage() (model.Message, error) {
	sentiment := model.Sentiment(r.Sentiment)
	if !sentiment.Valid() {
		return model.Message{}, fmt.Errorf("%w: unknown sentiment %q", ErrInvalidRecord, r.Sentiment)
	}

	length := utf8.RuneCountInString(r.Text)
	if r.Length != nil {
		if *r.Length < 0 {
			return model.Message{}, fmt.Errorf("%w: negative length %d", ErrInvalidRecord, *r.Length)
		}
		length = *r.Length
	}

	id := r.ID
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}

	return model.Message{
		ID:        id,
		User:      r.User,
		Text:      r.Text,
		Sentiment: sentiment,
		Length:    length,
	}, nil
}
