package utils

import "strings"

var forbiddenWords = []string{"spam", "abuse", "illegal"}

// ValidateChatInput rejects empty messages and messages containing
// disallowed words.
func ValidateChatInput(input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}
	lower := strings.ToLower(input)
	for _, word := range forbiddenWords {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}
