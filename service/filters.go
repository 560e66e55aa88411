package service

import "strings"

// Terms the bot refuses to discuss. Matching is case-insensitive and
// substring-based; hits inside unrelated words are an accepted limitation.
var disallowedTerms = []string{
	"hitler",
	"nazismo",
	"morte",
}

// Phrases that signal the user may benefit from a support room suggestion:
// academic stress, isolation and help-seeking language.
var supportRoomTriggers = []string{
	"nota", "prova", "matéria", "estudar", "aprendizado",
	"ansioso com a escola", "sozinho", "isolado", "sem amigos", "dificuldade",
	"ajuda", "apoio", "conselho",
}

// IsDisallowed reports whether the text touches a denylisted subject.
func IsDisallowed(text string) bool {
	return containsAny(text, disallowedTerms)
}

// WantsSupportRoom reports whether the text suggests interest in a support room.
func WantsSupportRoom(text string) bool {
	return containsAny(text, supportRoomTriggers)
}

func containsAny(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
