package catalog

import (
	"strconv"
	"strings"
)

// Validation messages returned to the user when an answer does not fit the
// current question's expected type.
const (
	ratingReason = "Please provide a rating between 1 and 5."
	yesNoReason  = "Please answer with a yes or no."
)

// yesNoTokens are the accepted affirmative/negative markers for yes/no
// questions, matched as case-insensitive substrings.
var yesNoTokens = []string{"yes", "yeah", "sure", "no", "nope", "nah"}

// Validation is the outcome of validating a raw answer against a question.
// When OK is false, Reason holds the conversational correction to send back.
type Validation struct {
	OK     bool
	Reason string
}

// Validate checks a raw user answer against the question's expected type.
// It is a pure function: no side effects, total over its input domain.
//
//   - rating: must parse as an integer in [1,5].
//   - yesno: must contain one of the yes/no tokens (case-insensitive).
//   - text: always valid; no minimum length is enforced.
func Validate(q Question, raw string) Validation {
	switch q.Type {
	case TypeRating:
		if _, ok := RatingValue(raw); !ok {
			return Validation{Reason: ratingReason}
		}
	case TypeYesNo:
		lower := strings.ToLower(strings.TrimSpace(raw))
		if !containsAny(lower, yesNoTokens) {
			return Validation{Reason: yesNoReason}
		}
	}
	return Validation{OK: true}
}

// RatingValue parses a rating answer. It accepts a leading integer with
// surrounding whitespace ("4 stars" rates as 4) and reports whether the
// value lies in [1,5].
func RatingValue(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
