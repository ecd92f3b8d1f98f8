package model

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Encode serializes tasks as a JSON array of {id, text, done} objects.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses the output of Encode. Empty input and `null` decode to an empty list.
func Decode(b []byte) ([]Task, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return []Task{}, nil
	}
	var tasks []Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}
