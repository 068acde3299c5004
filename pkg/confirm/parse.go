package confirm

import "strings"

// Affirmative and negative vocabularies for spoken answers. Matching is
// word-based after lowercasing, plus a few multi-word phrases.
var (
	affirmativeWords = []string{
		"yes", "yeah", "yep", "yup", "sure", "affirmative", "confirm",
		"confirmed", "ok", "okay", "correct", "right", "proceed", "do", "land",
	}

	negativeWords = []string{
		"no", "nope", "nah", "negative", "don't", "dont", "stop", "cancel",
		"abort", "wait", "hold",
	}

	affirmativePhrases = []string{
		"go ahead",
		"go for it",
	}
)

// ParseAnswer interprets a spoken or typed reply as yes, no, or
// unresolved. Negative words win over affirmative ones so that "no, don't
// land" never reads as consent. An empty or unrecognized reply returns
// AnswerTimeout for the gate to resolve with the default.
func ParseAnswer(text string) Answer {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return AnswerTimeout
	}

	words := strings.FieldsFunc(normalized, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '!' || r == '?'
	})

	for _, w := range words {
		for _, neg := range negativeWords {
			if w == neg {
				return AnswerNo
			}
		}
	}

	for _, phrase := range affirmativePhrases {
		if strings.Contains(normalized, phrase) {
			return AnswerYes
		}
	}
	for _, w := range words {
		for _, aff := range affirmativeWords {
			if w == aff {
				return AnswerYes
			}
		}
	}

	return AnswerTimeout
}
