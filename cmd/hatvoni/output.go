package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// printJSON writes a value as formatted JSON to stdout.
func (a *app) printJSON(v interface{}) {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// printf writes human-readable text to stdout.
func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.stdout, format, args...)
}

// warnf writes a warning line to stderr in human mode.
func (a *app) warnf(format string, args ...interface{}) {
	if a.jsonOutput {
		return
	}
	fmt.Fprintf(a.stderr, "warning: "+format+"\n", args...)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// orDefault returns s, or def when s is empty.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// joinTags formats open string tags for a "one of" hint.
func joinTags[T ~string](tags []T) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// pluralize returns "1 task" / "2 tasks".
func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
