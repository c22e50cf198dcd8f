package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON cleans and unmarshals a JSON object embedded in an LLM reply.
// Models routinely wrap the payload in markdown fences or prose, so the
// parser takes the outermost '{'..'}' span and decodes that.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start == -1 || end == -1 || start >= end {
		return zero, fmt.Errorf("no JSON object found in response")
	}
	jsonStr := response[start : end+1]

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return result, nil
}
