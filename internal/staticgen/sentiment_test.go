package staticgen

import (
	"strings"
	"testing"
)

func TestSentiment_Positive(t *testing.T) {
	out := Sentiment("The talks were great and I enjoyed the day")
	if !strings.HasPrefix(out, "Sentiment: Positive. ") {
		t.Fatalf("expected positive, got %q", out)
	}
	if !strings.Contains(out, "The feedback contains positive elements. ") {
		t.Fatalf("expected mild qualifier, got %q", out)
	}
}

func TestSentiment_HighlyPositive(t *testing.T) {
	out := Sentiment("Amazing, excellent, wonderful, perfect event that I loved")
	if !strings.Contains(out, "The feedback is highly positive. ") {
		t.Fatalf("expected intensity qualifier, got %q", out)
	}
}

func TestSentiment_Negative(t *testing.T) {
	out := Sentiment("The schedule was confusing and the breaks were boring")
	if !strings.HasPrefix(out, "Sentiment: Negative. ") {
		t.Fatalf("expected negative, got %q", out)
	}
	if !strings.Contains(out, "The feedback highlights areas for improvement. ") {
		t.Fatalf("expected mild qualifier, got %q", out)
	}
	if !strings.Contains(out, "Key themes mentioned: schedule.") {
		t.Fatalf("expected schedule theme, got %q", out)
	}
}

// Equal positive and negative hits classify as Neutral, with both themes
// still extracted.
func TestSentiment_MixedFeedbackIsNeutral(t *testing.T) {
	out := Sentiment("I loved the content but the venue was terrible")
	if !strings.HasPrefix(out, "Sentiment: Neutral. ") {
		t.Fatalf("expected neutral for balanced feedback, got %q", out)
	}
	if !strings.Contains(out, "The feedback contains mixed or balanced opinions. ") {
		t.Fatalf("expected mixed qualifier, got %q", out)
	}
	if !strings.Contains(out, "Key themes mentioned: content, venue.") {
		t.Fatalf("expected content and venue themes in order, got %q", out)
	}
}

func TestSentiment_FactualWithoutThemes(t *testing.T) {
	out := Sentiment("I attended on Tuesday")
	if !strings.HasPrefix(out, "Sentiment: Neutral. ") {
		t.Fatalf("expected neutral, got %q", out)
	}
	if !strings.Contains(out, "The feedback is factual without strong sentiment. ") {
		t.Fatalf("expected factual qualifier, got %q", out)
	}
	if !strings.Contains(out, "No specific themes clearly identified in the feedback.") {
		t.Fatalf("expected no-themes suffix, got %q", out)
	}
}

func TestSentiment_ThemesFollowVocabularyOrder(t *testing.T) {
	out := Sentiment("the venue, the food, and the content were all present")
	if !strings.Contains(out, "Key themes mentioned: content, venue, food.") {
		t.Fatalf("themes not in vocabulary order: %q", out)
	}
}
