package staticgen

import "strings"

// Word lists for the sentiment heuristic. Matching is substring containment
// over the lower-cased text, not tokenized: "dislike" also matches inside
// "disliked".
var positiveWords = []string{
	"good", "great", "excellent", "amazing", "fantastic", "wonderful", "enjoyed",
	"love", "best", "perfect", "awesome", "brilliant", "outstanding", "terrific",
	"happy", "pleased", "satisfied", "impressive", "thank", "appreciate", "grateful",
}

var negativeWords = []string{
	"bad", "poor", "terrible", "awful", "worst", "hate", "dislike", "disappointed",
	"boring", "waste", "frustrating", "annoying", "confusing", "difficult", "unhappy",
	"issue", "problem", "disappoint", "lacking", "mediocre", "unpleasant", "uncomfortable",
}

// themeWords is the fixed vocabulary scanned for topic mentions.
var themeWords = []string{
	"content", "speakers", "venue", "food", "schedule", "organization",
	"networking", "staff", "price", "value", "technology", "audio", "video",
}

// intensityThreshold separates "highly" positive/critical feedback from
// feedback that merely contains some sentiment-bearing words.
const intensityThreshold = 3

// Sentiment runs the keyword sentiment/theme heuristic over a free-text
// answer and returns a single descriptive string combining the sentiment
// label, an intensity qualifier, and any detected themes. The string is
// stored verbatim as the answer's derived sentiment; downstream analytics
// re-parse it by substring matching, so the wording here is part of the
// contract.
//
// Classification counts positive vs negative word hits; equal counts yield
// Neutral, including the mixed case where both sides scored.
func Sentiment(text string) string {
	lower := strings.ToLower(text)

	positive := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	negative := 0
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negative++
		}
	}

	var b strings.Builder
	switch {
	case positive > negative:
		b.WriteString("Sentiment: Positive. ")
		if positive > intensityThreshold {
			b.WriteString("The feedback is highly positive. ")
		} else {
			b.WriteString("The feedback contains positive elements. ")
		}
	case negative > positive:
		b.WriteString("Sentiment: Negative. ")
		if negative > intensityThreshold {
			b.WriteString("The feedback is highly critical. ")
		} else {
			b.WriteString("The feedback highlights areas for improvement. ")
		}
	default:
		b.WriteString("Sentiment: Neutral. ")
		if positive > 0 || negative > 0 {
			b.WriteString("The feedback contains mixed or balanced opinions. ")
		} else {
			b.WriteString("The feedback is factual without strong sentiment. ")
		}
	}

	var themes []string
	for _, t := range themeWords {
		if strings.Contains(lower, t) {
			themes = append(themes, t)
		}
	}
	if len(themes) > 0 {
		b.WriteString("Key themes mentioned: ")
		b.WriteString(strings.Join(themes, ", "))
		b.WriteString(".")
	} else {
		b.WriteString("No specific themes clearly identified in the feedback.")
	}

	return b.String()
}
