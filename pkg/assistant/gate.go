package assistant

import (
	"strings"
	"unicode"
)

// greetingWords are recognized anywhere in the message.
var greetingWords = map[string]bool{
	"hi":        true,
	"hello":     true,
	"hey":       true,
	"hiya":      true,
	"howdy":     true,
	"greetings": true,
	"namaste":   true,
}

// greetingPhrases are multi-word greetings matched as substrings of the
// normalized message.
var greetingPhrases = []string{
	"good morning",
	"good afternoon",
	"good evening",
}

// shortGreetings only count when the whole message is three words or
// fewer.
var shortGreetings = map[string]bool{
	"yo":   true,
	"sup":  true,
	"hola": true,
}

// questionWords signal a concrete question or request.
var questionWords = map[string]bool{
	"what":        true,
	"how":         true,
	"why":         true,
	"when":        true,
	"where":       true,
	"which":       true,
	"who":         true,
	"tell":        true,
	"explain":     true,
	"describe":    true,
	"about":       true,
	"need":        true,
	"want":        true,
	"know":        true,
	"details":     true,
	"information": true,
	"info":        true,
	"help":        true,
	"give":        true,
	"list":        true,
	"show":        true,
}

// normalize case-folds the message and strips punctuation.
func normalize(message string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(message) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// IsGreeting reports whether the message contains a recognized greeting
// word, or is short enough that a casual greeting word qualifies.
func IsGreeting(message string) bool {
	norm := normalize(message)
	words := strings.Fields(norm)

	for _, w := range words {
		if greetingWords[w] {
			return true
		}
	}
	for _, phrase := range greetingPhrases {
		if strings.Contains(norm, phrase) {
			return true
		}
	}
	if len(words) <= 3 {
		for _, w := range words {
			if shortGreetings[w] {
				return true
			}
		}
	}
	return false
}

// HasQuestion reports whether the message carries a concrete question or
// request. Messages of two words or fewer never do.
func HasQuestion(message string) bool {
	words := strings.Fields(normalize(message))
	if len(words) <= 2 {
		return false
	}
	if strings.Contains(message, "?") {
		return true
	}
	for _, w := range words {
		if questionWords[w] {
			return true
		}
	}
	// Anything longer than two words is treated as a question.
	return len(words) > 2
}

// CatalogGreeting is the canned first-turn reply for a bare greeting. It
// lists every catalog product and the fixed source URL, and is produced
// without any network calls.
func CatalogGreeting(names []string, sourceURL string) string {
	var b strings.Builder
	b.WriteString("Hello! I'm a medical product assistant. ")

	if len(names) == 0 {
		b.WriteString("Ask me about any product in the catalog and I'll look it up for you.")
	} else {
		b.WriteString("I can help you with information about the following products:\n\n")
		for _, name := range names {
			b.WriteString("- ")
			b.WriteString(name)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nSource: ")
	b.WriteString(sourceURL)
	b.WriteString("\n\nWhat would you like to know?")
	return b.String()
}
