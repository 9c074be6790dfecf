package recovery

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Outcome tags how a value was recovered from raw text.
type Outcome int

const (
	// OutcomeParsed means the value parsed without modification.
	OutcomeParsed Outcome = iota

	// OutcomeRepaired means the text was rewritten before it parsed.
	OutcomeRepaired

	// OutcomeFailed means no strategy produced a value.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeParsed:
		return "parsed"
	case OutcomeRepaired:
		return "repaired"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseResult is the tagged result of running the strategy chain.
type ParseResult struct {
	Value    any
	Outcome  Outcome
	Strategy string
	Warnings []string
}

// Strategy is a pure function attempting to recover a structured value
// from raw text. ok reports whether the strategy produced a value.
type Strategy struct {
	Name    string
	Repairs bool // true when success implies the text was modified
	Apply   func(text string) (value any, ok bool)
}

// DefaultStrategies returns the standard ordered strategy chain:
// direct parse, code-fence strip, balanced-literal extraction,
// best-effort repair, and key/value heuristic extraction.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "direct", Apply: parseDirect},
		{Name: "fence_strip", Apply: parseFenceStripped},
		{Name: "literal_extract", Apply: parseExtractedLiteral},
		{Name: "repair", Repairs: true, Apply: parseRepaired},
		{Name: "key_value", Repairs: true, Apply: parseKeyValuePairs},
	}
}

// parse runs the strategy chain in order and returns the first success.
func parse(text string, strategies []Strategy) ParseResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ParseResult{Outcome: OutcomeFailed}
	}

	for _, s := range strategies {
		value, ok := s.Apply(trimmed)
		if !ok {
			continue
		}
		result := ParseResult{
			Value:    value,
			Outcome:  OutcomeParsed,
			Strategy: s.Name,
		}
		if s.Repairs {
			result.Outcome = OutcomeRepaired
			result.Warnings = append(result.Warnings, "input required repair via "+s.Name)
		}
		return result
	}

	return ParseResult{Outcome: OutcomeFailed}
}

// parseStructured unmarshals text, accepting only object or array roots.
// Scalars are rejected so that prose like "42" is not mistaken for a
// structured response.
func parseStructured(text string) (any, bool) {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, false
	}
	switch value.(type) {
	case map[string]any, []any:
		return value, true
	default:
		return nil, false
	}
}

func parseDirect(text string) (any, bool) {
	return parseStructured(text)
}

var fenceRe = regexp.MustCompile("(?s)```(?:[a-zA-Z]+)?\\s*\\n?(.*?)```")

// parseFenceStripped extracts the body of the first markdown code fence
// and parses it.
func parseFenceStripped(text string) (any, bool) {
	m := fenceRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return parseStructured(strings.TrimSpace(m[1]))
}

// parseExtractedLiteral scans for the first balanced object or array
// literal embedded anywhere in the text, including inside fenced blocks.
func parseExtractedLiteral(text string) (any, bool) {
	literal, ok := extractBalanced(text)
	if !ok {
		return nil, false
	}
	return parseStructured(literal)
}

// extractBalanced finds the first '{' or '[' and returns the substring
// up to its matching close bracket, tracking string literals and escapes.
func extractBalanced(text string) (string, bool) {
	start := -1
	var open, close byte
	for i := 0; i < len(text); i++ {
		if text[i] == '{' {
			start, open, close = i, '{', '}'
			break
		}
		if text[i] == '[' {
			start, open, close = i, '[', ']'
			break
		}
	}
	if start < 0 {
		return "", false
	}

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
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// parseRepaired applies best-effort textual repairs and retries the
// parse: trailing commas removed, single quotes normalized to double,
// bare keys quoted. The repaired candidate is also run through literal
// extraction so surrounding prose does not defeat the repair.
func parseRepaired(text string) (any, bool) {
	repaired := repairText(text)
	if v, ok := parseStructured(repaired); ok {
		return v, true
	}
	if literal, ok := extractBalanced(repaired); ok {
		return parseStructured(literal)
	}
	return nil, false
}

func repairText(text string) string {
	out := text
	// Fence markers first so repairs apply to the body.
	if m := fenceRe.FindStringSubmatch(out); m != nil {
		out = m[1]
	}
	out = strings.ReplaceAll(out, "'", `"`)
	out = bareKeyRe.ReplaceAllString(out, `$1"$2":`)
	out = trailingCommaRe.ReplaceAllString(out, `$1`)
	return strings.TrimSpace(out)
}

var kvPairRe = regexp.MustCompile(`"?([A-Za-z_][A-Za-z0-9_]*)"?\s*:\s*("([^"\\]*(?:\\.[^"\\]*)*)"|'([^']*)'|-?\d+(?:\.\d+)?|true|false|null|\[[^\]\n]*\])`)

// parseKeyValuePairs scans for key: value pairs and assembles an object,
// coercing scalar types. Succeeds only when at least one pair is found.
func parseKeyValuePairs(text string) (any, bool) {
	matches := kvPairRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, false
	}

	result := make(map[string]any, len(matches))
	for _, m := range matches {
		key := m[1]
		raw := m[2]
		switch {
		case strings.HasPrefix(raw, `"`):
			result[key] = m[3]
		case strings.HasPrefix(raw, "'"):
			result[key] = m[4]
		case raw == "true":
			result[key] = true
		case raw == "false":
			result[key] = false
		case raw == "null":
			result[key] = nil
		case strings.HasPrefix(raw, "["):
			var arr []any
			if err := json.Unmarshal([]byte(raw), &arr); err == nil {
				result[key] = arr
			} else {
				result[key] = raw
			}
		default:
			if n, err := strconv.ParseFloat(raw, 64); err == nil {
				result[key] = n
			} else {
				result[key] = raw
			}
		}
	}

	if len(result) == 0 {
		return nil, false
	}
	return result, true
}
