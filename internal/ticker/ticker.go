// Package ticker handles symbol list input and pre-monitoring validation.
package ticker

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var tokenSplit = regexp.MustCompile(`[,\s]+`)

// Parse extracts upper-cased symbols from text, separated by any run of
// commas or whitespace. Empty tokens are dropped.
func Parse(text string) []string {
	var symbols []string
	for _, tok := range tokenSplit.Split(strings.TrimSpace(text), -1) {
		if tok == "" {
			continue
		}
		symbols = append(symbols, strings.ToUpper(tok))
	}
	return symbols
}

// ParseFile reads a ticker file and extracts its symbols.
func ParseFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ticker file: %w", err)
	}
	return Parse(string(data)), nil
}

// Dedupe removes duplicate symbols, preserving first-seen order.
func Dedupe(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
