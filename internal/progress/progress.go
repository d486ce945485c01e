// Package progress persists a flashcard session to a storage.Store under a
// single namespace key.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/samber/lo"

	"vocabtrainer/internal/session"
	"vocabtrainer/internal/storage"
)

// Key is the namespace entry the session is stored under.
const Key = "vocab-trainer.progress"

const writeTimeout = 5 * time.Second

var errMissingFields = errors.New("progress record has neither statuses nor index")

// record is the stored shape.
type record struct {
	Statuses map[string]string `json:"statuses"`
	Index    *int              `json:"index"`
}

// rawRecord is record as read back. Each status stays undecoded so a value
// of the wrong JSON type is coerced to unset instead of failing the decode.
type rawRecord struct {
	Statuses map[string]json.RawMessage `json:"statuses"`
	Index    *int                       `json:"index"`
}

// Adapter reads and writes session state for a fixed word list.
type Adapter struct {
	store storage.Store
	words []string
}

// New returns an adapter normalising against words.
func New(store storage.Store, words []string) *Adapter {
	return &Adapter{store: store, words: lo.Uniq(words)}
}

// Save writes state under Key. Errors are logged and dropped.
func (a *Adapter) Save(state session.State) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	a.SaveContext(ctx, state)
}

// SaveContext is Save with a caller-supplied context.
func (a *Adapter) SaveContext(ctx context.Context, state session.State) {
	rec := record{
		Statuses: lo.MapValues(state.Statuses, func(s session.Status, _ string) string {
			return string(s)
		}),
		Index: lo.ToPtr(state.Index),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		log.Printf("[WARN] Failed to encode progress: %v", err)
		return
	}
	if err := a.store.Set(ctx, Key, string(data)); err != nil {
		log.Printf("[WARN] Failed to save progress: %v", err)
	}
}

// Load returns the stored state normalised against the word list, or nil
// when nothing usable is stored.
func (a *Adapter) Load(ctx context.Context) *session.State {
	raw, ok, err := a.store.Get(ctx, Key)
	if err != nil {
		log.Printf("[WARN] Failed to read progress: %v", err)
		return nil
	}
	if !ok {
		log.Printf("[INFO] No saved progress found")
		return nil
	}
	state, err := Decode(raw, a.words)
	if err != nil {
		log.Printf("[WARN] Ignoring malformed progress: %v", err)
		return nil
	}
	return state
}

// Decode parses a stored record and normalises it: statuses for words not
// in words are dropped, unknown status values become unset, missing words
// are unset, and the index is clamped into range.
func Decode(raw string, words []string) (*session.State, error) {
	var rec rawRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, err
	}
	if rec.Statuses == nil && rec.Index == nil {
		return nil, errMissingFields
	}

	statuses := make(map[string]session.Status, len(words))
	for _, w := range words {
		statuses[w] = decodeStatus(rec.Statuses[w])
	}

	index := 0
	if rec.Index != nil {
		index = *rec.Index
	}
	switch {
	case len(words) == 0 || index < 0:
		index = 0
	case index >= len(words):
		index = len(words) - 1
	}
	return &session.State{Statuses: statuses, Index: index}, nil
}

func decodeStatus(raw json.RawMessage) session.Status {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return session.StatusUnset
	}
	if st := session.Status(s); st.Valid() {
		return st
	}
	return session.StatusUnset
}
