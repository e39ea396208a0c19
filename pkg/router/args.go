package router

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Args holds the text following a command name and consumes it token by token.
type Args struct {
	raw string
}

// NewArgs creates Args over the given text.
func NewArgs(raw string) *Args {
	return &Args{raw: raw}
}

// Next returns the next whitespace separated token.
func (a *Args) Next() (string, bool) {
	s := strings.TrimLeftFunc(a.raw, unicode.IsSpace)
	if s == "" {
		a.raw = ""

		return "", false
	}

	end := strings.IndexFunc(s, unicode.IsSpace)
	if end < 0 {
		a.raw = ""

		return s, true
	}

	a.raw = s[end:]

	return s[:end], true
}

// Uint64 parses the next token as an unsigned integer.
func (a *Args) Uint64() (uint64, error) {
	token, ok := a.Next()
	if !ok {
		return 0, ErrMissingArgument
	}

	v, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", token, err)
	}

	return v, nil
}

// Bool parses the next token as a boolean.
func (a *Args) Bool() (bool, error) {
	token, ok := a.Next()
	if !ok {
		return false, ErrMissingArgument
	}

	v, err := strconv.ParseBool(token)
	if err != nil {
		return false, fmt.Errorf("parse %q: %w", token, err)
	}

	return v, nil
}

// Rest returns the remaining text, trimmed.
func (a *Args) Rest() string {
	rest := strings.TrimSpace(a.raw)
	a.raw = ""

	return rest
}
