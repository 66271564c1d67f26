// Package sessionstore persists the signed-in identity of a dashboard client
// under a single key.
package sessionstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gestorial/internal/model"
)

const (
	// DefaultKey is the key the dashboard has always used.
	DefaultKey = "gestorial_user"

	// CurrentVersion is written by Encode.
	CurrentVersion = 1
)

var (
	ErrNotFound   = errors.New("session record not found")
	ErrInvalidKey = errors.New("invalid session key")
)

type Record struct {
	Version int        `json:"version"`
	User    model.User `json:"user"`
	Token   string     `json:"token,omitempty"`
	SavedAt time.Time  `json:"saved_at"`
}

func Encode(r Record) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode session record: %w", err)
	}
	return data, nil
}

// Decode reads a record. Records written before versioning carry no version
// field and decode as version 0.
func Decode(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("decode session record: %w", err)
	}
	return r, nil
}
