// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoJSON is returned when a response contains no well-formed JSON value
// of the requested kind.
var ErrNoJSON = errors.New("no JSON found in response")

// ExtractArray returns the first balanced [...] substring of text that is
// valid JSON, or "" when there is none. Model output often wraps JSON in
// prose or markdown fences, so the scan skips candidates that do not parse.
func ExtractArray(text string) string {
	return firstBalanced(text, '[', ']')
}

// ExtractObject returns the first balanced {...} substring of text that is
// valid JSON, or "" when there is none.
func ExtractObject(text string) string {
	return firstBalanced(text, '{', '}')
}

func firstBalanced(text string, open, close byte) string {
	found := ""
	eachBalanced(text, open, close, func(candidate string) bool {
		found = candidate
		return true
	})
	return found
}

// eachBalanced calls fn with every balanced, valid JSON substring of text
// that opens with open, in order of their opening bracket, until fn returns
// true.
func eachBalanced(text string, open, close byte, fn func(candidate string) bool) {
	for start := 0; start < len(text); start++ {
		if text[start] != open {
			continue
		}
		end := matchingClose(text, start, open, close)
		if end < 0 {
			continue
		}
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) && fn(candidate) {
			return
		}
	}
}

// matchingClose returns the index of the bracket closing the one at start,
// ignoring brackets inside JSON strings. It returns -1 when unbalanced.
func matchingClose(text string, start int, open, close byte) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// DecodeArray decodes the first JSON array in text that holds at least one
// element of type T. Arrays whose elements are all of another shape, such as
// the [1] of a citation marker in prose, are passed over. Within the chosen
// array, elements that do not decode are dropped and counted in skipped.
// An empty array is returned as an empty slice when no later array fits.
func DecodeArray[T any](text string) (out []T, skipped int, err error) {
	var lastErr error
	sawEmpty := false
	eachBalanced(text, '[', ']', func(candidate string) bool {
		var elems []json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &elems); err != nil {
			lastErr = err
			return false
		}
		if len(elems) == 0 {
			sawEmpty = true
			return false
		}

		decoded := make([]T, 0, len(elems))
		bad := 0
		for _, raw := range elems {
			var v T
			if err := json.Unmarshal(raw, &v); err != nil {
				lastErr = err
				bad++
				continue
			}
			decoded = append(decoded, v)
		}
		if len(decoded) == 0 {
			return false
		}
		out, skipped = decoded, bad
		return true
	})

	switch {
	case out != nil:
		return out, skipped, nil
	case sawEmpty:
		return []T{}, 0, nil
	case lastErr != nil:
		return nil, 0, fmt.Errorf("decoding JSON array: %w", lastErr)
	}
	return nil, 0, ErrNoJSON
}

// DecodeObject decodes the first JSON object in text that unmarshals into T.
func DecodeObject[T any](text string) (*T, error) {
	var out *T
	var lastErr error
	eachBalanced(text, '{', '}', func(candidate string) bool {
		var v T
		if err := json.Unmarshal([]byte(candidate), &v); err != nil {
			lastErr = err
			return false
		}
		out = &v
		return true
	})

	switch {
	case out != nil:
		return out, nil
	case lastErr != nil:
		return nil, fmt.Errorf("decoding JSON object: %w", lastErr)
	}
	return nil, ErrNoJSON
}
