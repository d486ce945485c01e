// Command vocab-tui is the terminal front end of the vocabulary trainer. It
// shares the word source, storage and progress record with the web server.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vocabtrainer/internal/config"
	"vocabtrainer/internal/progress"
	"vocabtrainer/internal/session"
	"vocabtrainer/internal/storage"
	"vocabtrainer/internal/wordlist"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	store, err := storage.Open(cfg.StorageBackend, cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	// The alt screen owns stdout; keep log output in the data directory.
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return err
	}
	logFile, err := tea.LogToFile(filepath.Join(cfg.DataDir, "vocab-tui.log"), "vocab-tui")
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	words, err := wordlist.Load(ctx, cfg.WordsSource)
	if err != nil {
		return err
	}

	adapter := progress.New(store, words)
	trainer := session.New(words, adapter)
	if state := adapter.Load(ctx); state != nil {
		trainer.Restore(*state)
	}

	p := tea.NewProgram(NewModel(trainer), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
