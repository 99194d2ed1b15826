package staticgen

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Responder selects templated replies and conclusions. The random source is
// injectable so tests can pin the choice; classification itself is
// deterministic.
//
// Responder is safe for concurrent use.
type Responder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Responder seeded from the current time.
func New() *Responder {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand returns a Responder drawing from the given source.
func NewWithRand(rng *rand.Rand) *Responder {
	return &Responder{rng: rng}
}

// Classify returns the intent whose keywords have the highest substring match
// count against the lower-cased message. Ties are resolved by declaration
// order (the first template with the maximum count wins); a message matching
// no keywords classifies as IntentFallback.
func Classify(message string) Intent {
	lower := strings.ToLower(message)

	best := IntentFallback
	bestCount := 0
	for _, t := range templates {
		count := 0
		for _, kw := range t.keywords {
			if strings.Contains(lower, kw) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = t.intent
		}
	}
	return best
}

// Reply classifies the message and returns one of the winning intent's
// candidate replies, chosen uniformly at random.
func (r *Responder) Reply(message string) string {
	intent := Classify(message)
	for _, t := range templates {
		if t.intent == intent && len(t.responses) > 0 {
			return t.responses[r.pick(len(t.responses))]
		}
	}
	return "Thank you for your feedback. Your insights are valuable to us!"
}

// Conclusion returns one of the canned thank-you messages, chosen uniformly
// at random. Content-independent by design; true personalization belongs to
// the remote generation path.
func (r *Responder) Conclusion() string {
	return conclusions[r.pick(len(conclusions))]
}

func (r *Responder) pick(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
