// Package session holds the flashcard session: the fixed word list, one
// status per word and the position of the card on screen.
package session

import (
	"math"

	"github.com/samber/lo"
)

// Status is the review outcome recorded for a word.
type Status string

const (
	StatusUnset     Status = "unset"
	StatusCorrect   Status = "correct"
	StatusIncorrect Status = "incorrect"
	StatusSkipped   Status = "skipped"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUnset, StatusCorrect, StatusIncorrect, StatusSkipped:
		return true
	}
	return false
}

// IsOutcome reports whether s can be recorded by a mark action.
func (s Status) IsOutcome() bool {
	return s == StatusCorrect || s == StatusIncorrect || s == StatusSkipped
}

// Unfinished reports whether a word with this status still needs an answer.
func (s Status) Unfinished() bool {
	return s == StatusUnset || s == StatusSkipped
}

// Direction selects where Advance moves.
type Direction int

const (
	Next Direction = iota
	Previous
)

// State is the persisted part of a session.
type State struct {
	Statuses map[string]Status `json:"statuses"`
	Index    int               `json:"index"`
}

// Groups is the summary view: words split by outcome, in word-list order.
type Groups struct {
	Correct     []string `json:"correct"`
	Incorrect   []string `json:"incorrect"`
	NotAnswered []string `json:"notAnswered"`
}

// Saver receives a snapshot after every state change.
type Saver interface {
	Save(State)
}

// SaverFunc adapts a plain function to Saver.
type SaverFunc func(State)

func (f SaverFunc) Save(s State) { f(s) }

// Manager owns the session state. It is not safe for concurrent use;
// callers serialise access.
type Manager struct {
	words    []string
	position map[string]int
	statuses []Status
	index    int
	saver    Saver
}

// New returns a manager with every word unset and the first word current.
// Repeated words keep their first position. saver may be nil.
func New(words []string, saver Saver) *Manager {
	uniq := lo.Uniq(words)
	m := &Manager{
		words:    uniq,
		position: make(map[string]int, len(uniq)),
		statuses: make([]Status, len(uniq)),
		saver:    saver,
	}
	for i, w := range uniq {
		m.position[w] = i
	}
	m.clear()
	return m
}

func (m *Manager) clear() {
	for i := range m.statuses {
		m.statuses[i] = StatusUnset
	}
	m.index = 0
}

// Restore replaces the current state without triggering a save. Entries for
// unknown words and invalid statuses are ignored; the index is clamped.
func (m *Manager) Restore(s State) {
	m.clear()
	for w, st := range s.Statuses {
		if i, ok := m.position[w]; ok && st.Valid() {
			m.statuses[i] = st
		}
	}
	m.index = clampIndex(s.Index, len(m.words))
}

// Mark records outcome for word, makes it current and moves on to the next
// unfinished word. It returns true when the session is complete afterwards.
// An unknown word or a non-outcome status leaves the state alone.
func (m *Manager) Mark(word string, outcome Status) bool {
	i, ok := m.position[word]
	if !ok || !outcome.IsOutcome() {
		return m.IsComplete()
	}
	m.statuses[i] = outcome
	m.index = i
	complete := m.seekUnfinished()
	m.save()
	return complete
}

// Advance moves the current card. Previous wraps from the first word to the
// last. Next searches for the next unfinished word and returns true, without
// moving, when there is none.
func (m *Manager) Advance(dir Direction) bool {
	if len(m.words) == 0 {
		return true
	}
	switch dir {
	case Previous:
		m.index = (m.index - 1 + len(m.words)) % len(m.words)
		m.save()
		return m.IsComplete()
	default:
		before := m.index
		complete := m.seekUnfinished()
		if m.index != before {
			m.save()
		}
		return complete
	}
}

// Reset clears every status and returns to the first word.
func (m *Manager) Reset() {
	m.clear()
	m.save()
}

// JumpTo makes word current. Unknown words are ignored.
func (m *Manager) JumpTo(word string) {
	i, ok := m.position[word]
	if !ok || i == m.index {
		return
	}
	m.index = i
	m.save()
}

// seekUnfinished moves the index to the nearest unfinished word after the
// current one, wrapping around and considering the current word last.
func (m *Manager) seekUnfinished() bool {
	n := len(m.statuses)
	for step := 1; step <= n; step++ {
		j := (m.index + step) % n
		if m.statuses[j].Unfinished() {
			m.index = j
			return false
		}
	}
	return true
}

func (m *Manager) save() {
	if m.saver != nil {
		m.saver.Save(m.Snapshot())
	}
}

// Snapshot returns a copy of the state suitable for persisting.
func (m *Manager) Snapshot() State {
	statuses := make(map[string]Status, len(m.words))
	for i, w := range m.words {
		statuses[w] = m.statuses[i]
	}
	return State{Statuses: statuses, Index: m.index}
}

// Words returns the word list in its fixed order.
func (m *Manager) Words() []string {
	return append([]string(nil), m.words...)
}

// Len is the number of words in the session.
func (m *Manager) Len() int { return len(m.words) }

// Index is the position of the current word.
func (m *Manager) Index() int { return m.index }

// Current returns the current word, or "" for an empty list.
func (m *Manager) Current() string {
	if len(m.words) == 0 {
		return ""
	}
	return m.words[m.index]
}

// Status returns the recorded status of word; unknown words read as unset.
func (m *Manager) Status(word string) Status {
	if i, ok := m.position[word]; ok {
		return m.statuses[i]
	}
	return StatusUnset
}

// Groups splits the word list by outcome. Skipped words count as not answered.
func (m *Manager) Groups() Groups {
	g := Groups{
		Correct:     []string{},
		Incorrect:   []string{},
		NotAnswered: []string{},
	}
	for i, w := range m.words {
		switch m.statuses[i] {
		case StatusCorrect:
			g.Correct = append(g.Correct, w)
		case StatusIncorrect:
			g.Incorrect = append(g.Incorrect, w)
		default:
			g.NotAnswered = append(g.NotAnswered, w)
		}
	}
	return g
}

// ProgressPercent is the rounded share of words answered correct or incorrect.
func (m *Manager) ProgressPercent() int {
	if len(m.words) == 0 {
		return 0
	}
	answered := lo.CountBy(m.statuses, func(s Status) bool {
		return !s.Unfinished()
	})
	return int(math.Round(100 * float64(answered) / float64(len(m.words))))
}

// IsComplete reports whether no word is unset or skipped.
func (m *Manager) IsComplete() bool {
	return !lo.ContainsBy(m.statuses, func(s Status) bool {
		return s.Unfinished()
	})
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
