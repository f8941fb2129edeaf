// Package religion derives a religious-affiliation context from recent
// conversation text. The result is recomputed every turn and never persisted.
package religion

import "strings"

// Context is the detected religious affiliation of the conversation.
type Context string

const (
	ContextMuslim    Context = "muslim"
	ContextChristian Context = "christian"
	ContextHindu     Context = "hindu"
	ContextBuddhist  Context = "buddhist"
	ContextNone      Context = "none"
)

// WindowSize caps how many recent messages feed the detection.
const WindowSize = 20

// Keyword sets are disjoint and checked in a fixed priority order;
// first set with any match wins. Membership is boolean, no scoring.
var islamicTerms = []string{
	"allah", "quran", "qur'an", "ramadan", "salah", "dua", "mosque",
	"inshallah", "alhamdulillah", "subhanallah", "imam", "eid", "halal",
}

var christianTerms = []string{
	"jesus", "christ", "bible", "church", "gospel", "prayer group",
	"pastor", "scripture", "psalm", "amen", "lord's prayer", "communion",
}

var hinduTerms = []string{
	"krishna", "shiva", "vishnu", "bhagavad gita", "gita", "temple puja",
	"puja", "mantra", "karma yoga", "dharma", "diwali", "vedas",
}

var buddhistTerms = []string{
	"buddha", "buddhist", "sangha", "vipassana", "zen", "nirvana",
	"bodhisattva", "sutra", "metta", "dhamma", "eightfold path",
}

// Detect scans the most recent messages (at most WindowSize, most-recent
// last) and returns the first matching affiliation, or ContextNone.
func Detect(messages []string) Context {
	if len(messages) == 0 {
		return ContextNone
	}
	if len(messages) > WindowSize {
		messages = messages[len(messages)-WindowSize:]
	}

	corpus := strings.ToLower(strings.Join(messages, " "))

	ordered := []struct {
		ctx   Context
		terms []string
	}{
		{ContextMuslim, islamicTerms},
		{ContextChristian, christianTerms},
		{ContextHindu, hinduTerms},
		{ContextBuddhist, buddhistTerms},
	}

	for _, set := range ordered {
		for _, term := range set.terms {
			if strings.Contains(corpus, term) {
				return set.ctx
			}
		}
	}

	return ContextNone
}
