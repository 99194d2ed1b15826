package catalog

import "testing"

func TestDefault_OrderAndTypes(t *testing.T) {
	c := Default()
	if c.Len() != 7 {
		t.Fatalf("expected 7 questions, got %d", c.Len())
	}

	wantOrder := []string{
		QuestionOverall, QuestionContent, QuestionSpeakers, QuestionVenue,
		QuestionHighlights, QuestionImprovements, QuestionFuture,
	}
	for i, id := range wantOrder {
		q := c.ByIndex(i)
		if q.ID != id {
			t.Fatalf("index %d: expected id %q, got %q", i, id, q.ID)
		}
		if q.Prompt == "" {
			t.Fatalf("index %d: empty prompt", i)
		}
	}

	ratings := c.RatingIDs()
	if len(ratings) != 4 {
		t.Fatalf("expected 4 rating questions, got %d", len(ratings))
	}
	free := c.FreeTextIDs()
	if len(free) != 2 || free[0] != QuestionHighlights || free[1] != QuestionImprovements {
		t.Fatalf("unexpected free-text ids: %v", free)
	}
	if c.ByIndex(c.Len()-1).Type != TypeYesNo {
		t.Fatalf("expected final question to be yes/no")
	}
}

func TestIndexOf(t *testing.T) {
	c := Default()
	if got := c.IndexOf(QuestionVenue); got != 3 {
		t.Fatalf("IndexOf(venue) = %d, want 3", got)
	}
	if got := c.IndexOf("unknown"); got != -1 {
		t.Fatalf("IndexOf(unknown) = %d, want -1", got)
	}
}

func TestNextIndex_DerivedFromAnswers(t *testing.T) {
	c := Default()

	if got := c.NextIndex(nil); got != 0 {
		t.Fatalf("empty answers: NextIndex = %d, want 0", got)
	}

	// Answering in order advances one position per answer.
	answers := map[string]string{}
	for i := 0; i < c.Len(); i++ {
		if got := c.NextIndex(answers); got != i {
			t.Fatalf("after %d answers: NextIndex = %d, want %d", i, got, i)
		}
		answers[c.ByIndex(i).ID] = "5"
	}
	if got := c.NextIndex(answers); got != c.Len() {
		t.Fatalf("all answered: NextIndex = %d, want %d", got, c.Len())
	}
}

func TestNextIndex_FirstGapWins(t *testing.T) {
	c := Default()

	// A hole earlier in the catalog takes precedence over later answers.
	answers := map[string]string{
		QuestionOverall:  "5",
		QuestionSpeakers: "4", // content missing
		QuestionFuture:   "yes",
	}
	if got := c.NextIndex(answers); got != c.IndexOf(QuestionContent) {
		t.Fatalf("NextIndex = %d, want index of %q", got, QuestionContent)
	}

	// Replaying the same answer leaves the position unchanged.
	before := c.NextIndex(answers)
	answers[QuestionOverall] = "5"
	if got := c.NextIndex(answers); got != before {
		t.Fatalf("replay moved NextIndex from %d to %d", before, got)
	}
}

func TestNextIndex_IgnoresUnknownKeys(t *testing.T) {
	c := Default()
	answers := map[string]string{"bogus": "x"}
	if got := c.NextIndex(answers); got != 0 {
		t.Fatalf("NextIndex = %d, want 0 (unknown keys do not advance)", got)
	}
}
