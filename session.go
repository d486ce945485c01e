package main

import (
	"context"
	"time"

	"github.com/samber/lo"
	"golang.org/x/time/rate"

	"vocabtrainer/internal/config"
	"vocabtrainer/internal/progress"
	"vocabtrainer/internal/session"
	"vocabtrainer/internal/storage"
	"vocabtrainer/internal/wordlist"
)

// NewApp wires an App around store. The word list is not loaded until
// ensureTrainer runs.
func NewApp(cfg config.Config, store storage.Store) *App {
	return &App{
		Config:     cfg,
		Store:      store,
		LoadWords:  wordlist.Load,
		StartTime:  time.Now(),
		LimiterMap: make(map[string]*rate.Limiter),
	}
}

// ensureTrainer loads the word list and restores saved progress the first
// time it succeeds. After a failed load every call retries, so a page reload
// is the manual retry. Callers hold TrainerMutex.
func (app *App) ensureTrainer(ctx context.Context) error {
	if app.Trainer != nil {
		return nil
	}

	words, err := app.LoadWords(ctx, app.Config.WordsSource)
	if err != nil {
		app.LoadErr = err
		logWarn("Failed to load words: %v", err)
		return err
	}

	adapter := progress.New(app.Store, words)
	trainer := session.New(words, adapter)
	if state := adapter.Load(ctx); state != nil {
		trainer.Restore(*state)
		logInfo("Restored progress: %d%% answered, current word %q", trainer.ProgressPercent(), trainer.Current())
	} else {
		logInfo("Starting a fresh session with %d words", trainer.Len())
	}

	app.Trainer = trainer
	app.Progress = adapter
	app.LoadErr = nil
	app.ShowSummary = trainer.IsComplete()
	return nil
}

// buildView snapshots the trainer for rendering. Callers hold TrainerMutex.
func (app *App) buildView() TrainerView {
	m := app.Trainer
	current := m.Current()
	return TrainerView{
		Word:        current,
		Status:      m.Status(current),
		Index:       m.Index(),
		Position:    m.Index() + 1,
		Total:       m.Len(),
		Progress:    m.ProgressPercent(),
		Complete:    m.IsComplete(),
		ShowSummary: app.ShowSummary,
		Groups:      m.Groups(),
		Words: lo.Map(m.Words(), func(w string, i int) WordView {
			return WordView{Word: w, Status: m.Status(w), Current: i == m.Index()}
		}),
	}
}

// loadedWordCount is the number of words in the trainer, or 0 before the
// word list has loaded.
func (app *App) loadedWordCount() int {
	app.TrainerMutex.Lock()
	defer app.TrainerMutex.Unlock()
	if app.Trainer == nil {
		return 0
	}
	return app.Trainer.Len()
}
