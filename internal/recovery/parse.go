package recovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	blankLines     = regexp.MustCompile(`\n[ \t\r]*\n(?:[ \t\r]*\n)*`)
	trailingCommas = regexp.MustCompile(`,\s*([}\]])`)
)

// stripFences removes a leading ``` or ```json marker and a trailing ```.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// repair normalizes common model artifacts: repeated blank lines and
// trailing commas before a closing brace or bracket.
func repair(s string) string {
	s = blankLines.ReplaceAllString(s, "\n")
	return trailingCommas.ReplaceAllString(s, "$1")
}

// extract returns the substring from the first open to the last close
// delimiter, inclusive.
func extract(raw string, opening, closing byte) (string, error) {
	start := strings.IndexByte(raw, opening)
	end := strings.LastIndexByte(raw, closing)
	if start < 0 || end < 0 || end < start {
		return "", fmt.Errorf("no %c...%c block found", opening, closing)
	}
	return raw[start : end+1], nil
}

func decodeObject(s string) (map[string]any, error) {
	if s == "" {
		return nil, errors.New("empty response")
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	if obj == nil {
		return nil, errors.New("decode object: null")
	}
	return obj, nil
}

func parseDirect(raw string) (map[string]any, error) {
	return decodeObject(stripFences(raw))
}

func parseExtracted(raw string) (map[string]any, error) {
	block, err := extract(raw, '{', '}')
	if err != nil {
		return nil, err
	}
	return decodeObject(repair(block))
}

// RecoverStrings recovers a JSON array of strings using the same direct and
// bracket-extraction tiers. Non-string items are formatted, blank items are
// dropped. An empty result is a ParseFailure.
func RecoverStrings(raw string) ([]string, error) {
	failure := &ParseFailure{}

	candidates := []struct {
		tier Tier
		text func() (string, error)
	}{
		{TierDirect, func() (string, error) { return stripFences(raw), nil }},
		{TierExtracted, func() (string, error) {
			block, err := extract(raw, '[', ']')
			return repair(block), err
		}},
	}

	for _, c := range candidates {
		text, err := c.text()
		if err == nil {
			var items []any
			if err = json.Unmarshal([]byte(text), &items); err == nil {
				if out := toStrings(items); len(out) > 0 {
					return out, nil
				}
				err = errors.New("no usable items")
			}
		}
		failure.Attempts = append(failure.Attempts, Attempt{Tier: c.tier, Err: err})
	}
	return nil, failure
}
