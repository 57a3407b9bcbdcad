package store

import (
	"regexp"
	"strings"
)

// tokenRegex matches word-boundary-delimited alphanumeric sequences.
var tokenRegex = regexp.MustCompile(`[a-zA-Z0-9]+`)

// Tokenize splits text into lowercase word tokens. Index construction and
// query parsing use the same function so term matching stays symmetric.
func Tokenize(text string) []string {
	words := tokenRegex.FindAllString(strings.ToLower(text), -1)
	if words == nil {
		return []string{}
	}
	return words
}
