package analyzer

import (
	"strings"
)

type QueryType string

const (
	QueryEmotional      QueryType = "emotional"
	QueryFactual        QueryType = "factual"
	QueryPractical      QueryType = "practical"
	QueryConversational QueryType = "conversational"
)

var greetings = []string{
	"hi", "hello", "hey", "good morning", "good evening", "thanks",
	"thank you", "bye", "goodbye",
}

var strongEmotionalPatterns = []string{
	"i feel", "i'm feeling", "feeling", "felt",
	"i can't", "i cant", "i don't",
	"overwhelm", "overwhelmed", "anxious", "worried", "scared", "angry",
	"sad", "depressed", "lonely", "alone", "hopeless", "stress", "upset",
	"hate", "hurt", "pain", "empty", "numb", "meaningless",
	"can't cope", "can't handle", "too much", "everything feels",
}

var factualPatterns = []string{
	"what is", "what are", "what does", "define", "definition",
	"according to", "dsm", "research shows", "studies show",
	"symptoms of", "causes of", "signs of", "diagnosis",
	"how common", "how many", "what percentage", "statistics",
	"difference between", "types of", "kinds of",
	"when was", "who developed", "where did",
	"latest", "recent", "new studies",
}

var practicalPatterns = []string{
	"how do i", "how to", "how can i", "what should i do",
	"ways to", "steps to", "strategies", "techniques",
	"help me", "can you help", "what can i do",
	"coping", "manage", "deal with", "handle",
	"what techniques", "what are some", "effective",
}

// ClassifyQueryType applies the rule chain: short greetings are
// conversational; strong emotional phrasing wins over everything; then
// factual and practical pattern lists; unmatched questions default to
// practical and unmatched statements to emotional.
func ClassifyQueryType(message string) QueryType {
	lower := strings.ToLower(strings.TrimSpace(message))

	if len(strings.Fields(lower)) <= 3 {
		trimmed := strings.TrimRight(lower, "!.? ")
		for _, g := range greetings {
			if trimmed == g || strings.HasPrefix(trimmed, g+" ") {
				return QueryConversational
			}
		}
	}

	for _, p := range strongEmotionalPatterns {
		if strings.Contains(lower, p) {
			return QueryEmotional
		}
	}
	for _, p := range factualPatterns {
		if strings.Contains(lower, p) {
			return QueryFactual
		}
	}
	for _, p := range practicalPatterns {
		if strings.Contains(lower, p) {
			return QueryPractical
		}
	}

	if strings.HasSuffix(strings.TrimSpace(message), "?") {
		return QueryPractical
	}
	return QueryEmotional
}
