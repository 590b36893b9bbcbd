package annotate

import "sync"

// RevealKey derives the state key for one blank. The question id is always
// part of the key: blank ids like "a" repeat across questions, and keying on
// the blank id alone makes toggling one question's blank flip another's.
// Single-answer questions (no discrete blanks) pass an empty blankID and key
// on the question id alone.
func RevealKey(questionID, blankID string) string {
	if blankID == "" {
		return questionID
	}
	return questionID + "-" + blankID
}

// RevealState tracks which answers a viewer has uncovered. One instance per
// viewing session; it must never be shared across unrelated viewers. Absent
// keys read as not revealed.
type RevealState struct {
	mu sync.Mutex
	m  map[string]bool
}

func NewRevealState() *RevealState {
	return &RevealState{m: map[string]bool{}}
}

// Toggle flips the flag for key, treating an absent key as hidden.
func (s *RevealState) Toggle(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = !s.m[key]
}

func (s *RevealState) IsRevealed(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[key]
}

// ClearAll hides every answer again.
func (s *RevealState) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = map[string]bool{}
}
