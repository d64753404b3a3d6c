// Package credentials resolves per-task endpoint credentials and identifiers
// from a pluggable configuration source.
package credentials

import (
	"fmt"
	"os"
	"strings"
)

// Source looks up a configuration value by key.
type Source interface {
	Lookup(key string) (string, bool)
}

// EnvSource reads the process environment.
type EnvSource struct{}

func (EnvSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapSource is a fixed set of values, mostly for tests.
type MapSource map[string]string

func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Credentials identify the caller to the inference endpoint.
type Credentials struct {
	URL    string
	APIKey string
}

// MissingKeyError is returned when the API key slot is unset or blank.
type MissingKeyError struct {
	Slot string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("api key %s is not set", e.Slot)
}

// Resolver maps credential slots to credentials for a single endpoint.
type Resolver struct {
	src Source
	url string
}

func NewResolver(src Source, url string) *Resolver {
	return &Resolver{src: src, url: url}
}

// Resolve returns the endpoint credentials for slot. When the key is missing it
// still returns the endpoint URL, with an empty key, alongside a
// *MissingKeyError.
func (r *Resolver) Resolve(slot string) (Credentials, error) {
	creds := Credentials{URL: r.url}
	key, _ := r.Value(slot)
	if key == "" {
		return creds, &MissingKeyError{Slot: slot}
	}
	creds.APIKey = key
	return creds, nil
}

// Value returns the trimmed value for key; blank values count as absent.
func (r *Resolver) Value(key string) (string, bool) {
	if key == "" || r.src == nil {
		return "", false
	}
	v, ok := r.src.Lookup(key)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
