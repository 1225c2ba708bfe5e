// Package toolexec implements the tool execution pipeline (spec §4.6,
// component C6): tolerant argument parsing, a content-addressed result
// cache, and the per-tool-call budget check that gate the existing
// internal/agent executor/registry machinery.
package toolexec

import (
	"strings"

	"github.com/vtcode/vtcode/pkg/vtmodels"
)

// ParseArguments tolerantly extracts a JSON object or array from a raw
// model-emitted arguments string (spec §3 ToolCall.arguments_json, §8
// item 6, §9's balanced-brace-scanner note, scenario S6).
//
// It strips Markdown code fences, then scans for the first balanced
// {...} or [...] container, tracking string/escape state so braces
// inside string literals don't confuse the scanner. Trailing text
// after the balanced container is ignored. If no balanced container is
// found, it returns an ArgumentValidation error.
func ParseArguments(raw string) (string, error) {
	s := stripCodeFences(raw)
	s = strings.TrimSpace(s)
	if s == "" {
		return "{}", nil
	}

	start := -1
	var open, close byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			start, open, close = i, '{', '}'
		case '[':
			start, open, close = i, '[', ']'
		default:
			continue
		}
		break
	}
	if start == -1 {
		return "", newArgError(raw)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
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
				return s[start : i+1], nil
			}
		}
	}
	return "", newArgError(raw)
}

// stripCodeFences removes a single leading/trailing Markdown fence
// (``` or ```json) around raw, if present.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return raw
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl != -1 {
		firstLine := strings.TrimSpace(s[:nl])
		if firstLine == "" || isBareLanguageTag(firstLine) {
			s = s[nl+1:]
		}
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return s
}

func isBareLanguageTag(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

func newArgError(raw string) *vtmodels.UnifiedError {
	return &vtmodels.UnifiedError{
		Kind:      vtmodels.ErrKindArgumentValidation,
		Component: "toolexec.ParseArguments",
		Message:   "could not parse tool arguments as JSON: " + truncate(raw, 200),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
