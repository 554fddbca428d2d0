package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSONObject is returned when model output contains no parseable JSON object
var ErrNoJSONObject = errors.New("no JSON object found")

var (
	fencedJSONRe    = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	fencedAnyRe     = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKeyRe   = regexp.MustCompile(`([{,]\s*)(\w+)(\s*:)`)
	controlCharRe   = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// ExtractJSONObject returns the first JSON object found in model output. It accepts:
// - a bare object
// - an object inside a markdown code fence
// - an object surrounded by prose
// - an object with trailing commas, unquoted keys or single quotes
//
// Anything that does not decode to an object (arrays, scalars, prose) is rejected.
func ExtractJSONObject(input string) (json.RawMessage, error) {
	input = strings.TrimSpace(strings.TrimPrefix(input, "\ufeff"))
	if input == "" {
		return nil, fmt.Errorf("empty input: %w", ErrNoJSONObject)
	}

	for _, candidate := range candidates(input) {
		if isObject(candidate) {
			return json.RawMessage(candidate), nil
		}
	}

	return nil, fmt.Errorf("%w in: %s", ErrNoJSONObject, truncateString(input, 100))
}

// ParseAIJSON extracts a JSON object from model output and decodes it into target
func ParseAIJSON(input string, target interface{}) error {
	raw, err := ExtractJSONObject(input)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode JSON object: %w", err)
	}
	return nil
}

// candidates lists the strings worth trying, cheapest first
func candidates(input string) []string {
	out := []string{input}

	if fenced := extractFromMarkdown(input); fenced != "" {
		out = append(out, fenced)
	}
	if braced := extractJSONFromText(input); braced != "" {
		out = append(out, braced, cleanAndFixJSON(braced))
	}
	out = append(out, cleanAndFixJSON(input))

	return out
}

func isObject(s string) bool {
	trimmed := bytes.TrimSpace([]byte(s))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	var obj map[string]json.RawMessage
	return json.Unmarshal(trimmed, &obj) == nil
}

// extractFromMarkdown extracts JSON from markdown code blocks
func extractFromMarkdown(input string) string {
	if matches := fencedJSONRe.FindStringSubmatch(input); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	if matches := fencedAnyRe.FindStringSubmatch(input); len(matches) > 1 {
		content := strings.TrimSpace(matches[1])
		if strings.HasPrefix(content, "{") {
			return content
		}
	}

	return ""
}

// extractJSONFromText finds the first balanced object in surrounding text
func extractJSONFromText(input string) string {
	start := strings.Index(input, "{")
	if start < 0 {
		return ""
	}
	return extractBalancedBraces(input[start:], '{', '}')
}

// extractBalancedBraces extracts content with balanced braces, ignoring braces inside strings
func extractBalancedBraces(input string, open, close rune) string {
	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}

		switch {
		case ch == '\\':
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			if depth == 0 {
				start = i
			}
			depth++
		case ch == close:
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}

// cleanAndFixJSON attempts to fix common JSON formatting issues
func cleanAndFixJSON(input string) string {
	s := strings.TrimSpace(input)
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = fixSingleQuotes(s)
	s = unquotedKeyRe.ReplaceAllString(s, `$1"$2"$3`)
	return controlCharRe.ReplaceAllString(s, "")
}

// fixSingleQuotes converts single-quoted strings to double-quoted ones. Apostrophes inside
// words are left alone.
func fixSingleQuotes(input string) string {
	var result strings.Builder
	inDouble := false
	inSingle := false
	escape := false

	for i, ch := range input {
		if escape {
			result.WriteRune(ch)
			escape = false
			continue
		}

		switch {
		case ch == '\\':
			escape = true
			result.WriteRune(ch)
		case ch == '"' && !inSingle:
			inDouble = !inDouble
			result.WriteRune(ch)
		case ch == '"' && inSingle:
			result.WriteString(`\"`)
		case ch == '\'' && !inDouble:
			if inSingle {
				inSingle = false
				result.WriteRune('"')
				continue
			}
			prev := lastNonSpace(input[:i])
			if prev == 0 || prev == ':' || prev == ',' || prev == '[' || prev == '{' {
				inSingle = true
				result.WriteRune('"')
				continue
			}
			result.WriteRune(ch)
		default:
			result.WriteRune(ch)
		}
	}

	return result.String()
}

func lastNonSpace(s string) byte {
	s = strings.TrimRight(s, " \t\r\n")
	if s == "" {
		return 0
	}
	return s[len(s)-1]
}

// truncateString truncates a string to maxLen bytes
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
