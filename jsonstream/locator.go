// Package jsonstream finds values inside a JSON document by walking its token stream,
// reporting where the value sits in the raw bytes so callers can splice it without
// re-serializing the rest of the document.
package jsonstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type (
	Locator struct {
		dec         *json.Decoder
		raw         []byte
		keys        []string
		currentPath strings.Builder
	}

	// Span is the half-open byte range [Start, End) of a scalar value.
	Span struct {
		Value any
		Start int64
		End   int64
	}
)

var (
	ErrNotFound = errors.New("key not found")
)

func IsObjectStart(t json.Token) bool {
	if d, ok := t.(json.Delim); ok && d == '{' {
		return true
	}

	return false
}

func IsStartingDelim(t json.Token) bool {
	if d, ok := t.(json.Delim); ok && (d == '{' || d == '[') {
		return true
	}

	return false
}

func IsEndingDelim(t json.Token) bool {
	if d, ok := t.(json.Delim); ok && (d == '}' || d == ']') {
		return true
	}

	return false
}

func IsTargetKey(t json.Token, key string) bool {
	if s, ok := t.(string); ok && s == key {
		return true
	}

	return false
}

// NewLocator prepares a walk of raw along path, e.g. ".name" or ".scripts.dev".
func NewLocator(raw []byte, path string) (*Locator, error) {
	if !strings.HasPrefix(path, ".") {
		return nil, errors.New(`path must start with the dot character "."`)
	}

	if strings.HasSuffix(path, ".") {
		return nil, errors.New(`path must not end with the dot character "."`)
	}

	keys := strings.Split(path, ".")[1:]

	return &Locator{dec: json.NewDecoder(bytes.NewReader(raw)), raw: raw, keys: keys}, nil
}

// Locate returns the span of the scalar value at the path.
// Non-nil returned error wraps [ErrNotFound] when some key along the path is absent.
func (l *Locator) Locate(ctx context.Context) (span Span, err error) {
	l.currentPath.WriteString(".")

	for i, key := range l.keys {
		if i > 0 {
			l.currentPath.WriteString(".")
		}

		if err = l.toTargetKey(ctx, key); err != nil {
			return Span{}, err
		}
	}

	return l.valueSpan()
}

func (l *Locator) toTargetKey(ctx context.Context, key string) (err error) {
	var t json.Token

	// consume the starting '{' token
	if t, err = l.dec.Token(); err != nil {
		return
	} else if !IsObjectStart(t) {
		return fmt.Errorf("the value at path %q is not a JSON object", l.currentPath.String())
	}

	if key == "" || strings.Contains(key, " ") {
		l.currentPath.WriteString(`"` + key + `"`)
	} else {
		l.currentPath.WriteString(key)
	}

	done := ctx.Done()

	// the last token; it always starts with '{'
	last := t
	// level of the current token; start with -1 as there's no "current" token in the beginning
	level := -1
	// the count of level-zero tokens so far, keys are the odd ones
	count := 0

	for level > 0 || l.dec.More() {
		select {
		case <-done:
			return fmt.Errorf("failed to find target key %q in time: %w", l.currentPath.String(), context.Cause(ctx))
		default:
		}

		if t, err = l.dec.Token(); err != nil {
			return
		}

		if IsStartingDelim(last) {
			level += 1
		}

		if IsEndingDelim(last) {
			level -= 1
		}

		if level == 0 {
			count += 1
		}

		if level == 0 && (count%2 == 1) && IsTargetKey(t, key) {
			return nil
		}

		last = t
	}

	return fmt.Errorf("%w: %q", ErrNotFound, l.currentPath.String())
}

func (l *Locator) valueSpan() (span Span, err error) {
	// right after the closing quote of the key
	start := l.dec.InputOffset()

	t, err := l.dec.Token()
	if err != nil {
		return Span{}, err
	}

	if d, ok := t.(json.Delim); ok {
		return Span{}, fmt.Errorf("the value at path %q is the delimiter %v", l.currentPath.String(), d)
	}

	end := l.dec.InputOffset()

	for start < end && isSeparator(l.raw[start]) {
		start++
	}

	return Span{Value: t, Start: start, End: end}, nil
}

func isSeparator(c byte) bool {
	return c == ':' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
