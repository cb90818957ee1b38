package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DiaryEntry is a single diary post. Author is always the identity resolved
// from the caller's token; CreatedAt is server-assigned and immutable.
type DiaryEntry struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Public    bool      `json:"public"`
	Text      string    `json:"text"`
}

// Visibility returns "public" or "private".
func (e DiaryEntry) Visibility() string {
	if e.Public {
		return "public"
	}
	return "private"
}

// EntryTimestamp returns t in UTC truncated to whole seconds.
func EntryTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// ParseEntryID accepts a JSON integer (1) or a JSON string holding one ("1").
func ParseEntryID(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, ErrMissingParameter
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, ErrInvalidEntryID
		}
		text = strings.TrimSpace(text)
	}

	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidEntryID
	}
	return id, nil
}

// ParseVisibility accepts only the JSON literals true and false. Strings,
// numbers (including 0 and 1) and null are rejected.
func ParseVisibility(raw json.RawMessage) (bool, error) {
	switch string(bytes.TrimSpace(raw)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, ErrInvalidVisibility
	}
}
