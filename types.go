package main

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"vocabtrainer/internal/config"
	"vocabtrainer/internal/progress"
	"vocabtrainer/internal/session"
	"vocabtrainer/internal/storage"
)

// WordLoader fetches the word list once at startup.
type WordLoader func(ctx context.Context, source string) ([]string, error)

// App holds the trainer and everything the handlers share.
type App struct {
	Config    config.Config
	Store     storage.Store
	LoadWords WordLoader
	StartTime time.Time

	// TrainerMutex guards Trainer, Progress, LoadErr and ShowSummary.
	TrainerMutex sync.Mutex
	Trainer      *session.Manager
	Progress     *progress.Adapter
	LoadErr      error
	ShowSummary  bool

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex
}

// WordView is one row of the word list sidebar.
type WordView struct {
	Word    string         `json:"word"`
	Status  session.Status `json:"status"`
	Current bool           `json:"current"`
}

// TrainerView is everything the page and the JSON state endpoint render.
type TrainerView struct {
	Word        string         `json:"word"`
	Status      session.Status `json:"status"`
	Index       int            `json:"index"`
	Position    int            `json:"position"`
	Total       int            `json:"total"`
	Progress    int            `json:"progress"`
	Complete    bool           `json:"complete"`
	ShowSummary bool           `json:"showSummary"`
	Groups      session.Groups `json:"groups"`
	Words       []WordView     `json:"words"`
}
