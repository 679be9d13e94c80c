package jsonutils

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	reFence         = regexp.MustCompile("(?s)```(?:json)?(.*?)```")
	reObj           = regexp.MustCompile(`(?s)\{.*\}`)
	// Applied to the whole payload, so a ", ]" inside a string value loses
	// its comma too.
	reTrailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// ExtractJSON tries to extract a JSON object from model output.
//
// Priority:
// 1. Triple-backtick fenced block
// 2. Greedy match from the first { to the last }
//
// Invisible characters and trailing commas are stripped. Escapes are left
// untouched so valid JSON strings survive.
func ExtractJSON(input string) string {
	input = strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '\uFEFF' || r == '\u200B' || r == '\u200C' || r == '\u200D' {
			return -1
		}
		return r
	}, input))

	if match := reFence.FindStringSubmatch(input); len(match) > 1 && strings.Contains(match[1], "{") {
		input = strings.TrimSpace(match[1])
	}
	if match := reObj.FindString(input); match != "" {
		input = match
	}

	input = reTrailingComma.ReplaceAllString(input, "$1")
	return strings.TrimSpace(input)
}

// Decode extracts the JSON object from model output and unmarshals it into v.
func Decode(input string, v any) error {
	return json.Unmarshal([]byte(ExtractJSON(input)), v)
}
