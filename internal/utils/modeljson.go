package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedBlock   = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
	bareKey       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*:)`)
	controlChars  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// ErrNoJSON is returned when no decodable JSON object can be found in a
// model reply.
var ErrNoJSON = errors.New("no JSON object in model output")

// DecodeModelJSON decodes a language model reply into target. Replies are
// tried as-is, then from a fenced code block, then as the first balanced
// object in the text, and finally after repairing trailing commas and
// unquoted keys.
func DecodeModelJSON(reply string, target any) error {
	reply = strings.TrimPrefix(strings.TrimSpace(reply), "\ufeff")
	if reply == "" {
		return ErrNoJSON
	}

	candidates := []string{reply}
	if m := fencedBlock.FindStringSubmatch(reply); len(m) > 1 {
		candidates = append(candidates, m[1])
	}
	if obj := FirstObject(reply); obj != "" {
		candidates = append(candidates, obj, repair(obj))
	}
	candidates = append(candidates, repair(reply))

	for _, c := range candidates {
		if err := json.Unmarshal([]byte(c), target); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNoJSON, Truncate(reply, 80))
}

// FirstObject returns the first brace-balanced {...} span in s, ignoring
// braces inside string literals, or "" if there is none.
func FirstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func repair(s string) string {
	s = trailingComma.ReplaceAllString(s, "$1")
	s = bareKey.ReplaceAllString(s, `$1"$2"$3`)
	return controlChars.ReplaceAllString(s, "")
}

// Truncate shortens s to at most n bytes, marking the cut with "...".
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
