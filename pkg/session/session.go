package session

import (
	"encoding/json"
	"maps"
)

const (
	flashPrefix = "__flash_"
	flashSuffix = "__"
)

// Session is a key/value bag bound to one request. It is not safe for
// concurrent use.
type Session struct {
	id   string
	data map[string]any
}

// New creates a session with the given id and a copy of data.
// An empty id marks a session that has not been persisted yet.
func New(id string, data map[string]any) *Session {
	s := &Session{id: id, data: make(map[string]any, len(data))}
	maps.Copy(s.data, data)
	return s
}

// ID returns the store id, or "" for cookie sessions and unsaved sessions.
func (s *Session) ID() string {
	return s.id
}

// Data returns a copy of the raw data, flash entries included.
func (s *Session) Data() map[string]any {
	return maps.Clone(s.data)
}

// Has reports whether key holds a value or a pending flash value.
func (s *Session) Has(key string) bool {
	if _, ok := s.data[key]; ok {
		return true
	}
	_, ok := s.data[flashKey(key)]
	return ok
}

// Get returns the value stored under key. Flash values are returned once
// and removed.
func (s *Session) Get(key string) (any, bool) {
	if v, ok := s.data[key]; ok {
		return v, true
	}

	fk := flashKey(key)
	if v, ok := s.data[fk]; ok {
		delete(s.data, fk)
		return v, true
	}
	return nil, false
}

// GetString returns the value under key if it is a string.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// GetInt returns the value under key as an int. Numbers decoded from JSON
// arrive as float64, int64 or json.Number and are converted.
func (s *Session) GetInt(key string) (int, bool) {
	v, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}

func (s *Session) GetBool(key string) (bool, bool) {
	v, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func (s *Session) Set(key string, value any) {
	s.data[key] = value
}

// Unset removes key. Pending flash values for key are kept.
func (s *Session) Unset(key string) {
	delete(s.data, key)
}

// Flash stores a value that is visible to a single Get after the session is
// committed and read back.
func (s *Session) Flash(key string, value any) {
	s.data[flashKey(key)] = value
}

func flashKey(key string) string {
	return flashPrefix + key + flashSuffix
}
