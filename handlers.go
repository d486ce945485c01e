package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"vocabtrainer/internal/session"
)

// homeHandler renders the trainer page, or the load-error state when the
// word list could not be loaded.
func (app *App) homeHandler(c *gin.Context) {
	app.TrainerMutex.Lock()
	defer app.TrainerMutex.Unlock()

	if err := app.ensureTrainer(c.Request.Context()); err != nil {
		app.renderLoadError(c, err)
		return
	}
	c.HTML(http.StatusOK, TemplatePage, gin.H{
		"title":  AppTitle,
		"static": app.Config.StaticBasePath,
		"view":   app.buildView(),
	})
}

// stateHandler returns the current session as JSON.
func (app *App) stateHandler(c *gin.Context) {
	app.TrainerMutex.Lock()
	defer app.TrainerMutex.Unlock()

	if err := app.ensureTrainer(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.buildView())
}

// markHandler records an outcome for the posted word.
func (app *App) markHandler(c *gin.Context) {
	word := strings.TrimSpace(c.PostForm("word"))
	outcome := session.Status(strings.ToLower(strings.TrimSpace(c.PostForm("outcome"))))

	app.act(c, func(m *session.Manager) {
		if !outcome.IsOutcome() {
			logWarn("Ignoring mark with invalid outcome %q", outcome)
			return
		}
		if m.Mark(word, outcome) {
			logInfo("All words answered, showing summary")
			app.ShowSummary = true
		}
	})
}

func (app *App) nextHandler(c *gin.Context) {
	app.act(c, func(m *session.Manager) {
		if m.Advance(session.Next) {
			app.ShowSummary = true
		}
	})
}

func (app *App) previousHandler(c *gin.Context) {
	app.act(c, func(m *session.Manager) {
		m.Advance(session.Previous)
		app.ShowSummary = false
	})
}

func (app *App) resetHandler(c *gin.Context) {
	app.act(c, func(m *session.Manager) {
		m.Reset()
		app.ShowSummary = false
		logInfo("Session reset")
	})
}

func (app *App) jumpHandler(c *gin.Context) {
	word := strings.TrimSpace(c.PostForm("word"))
	app.act(c, func(m *session.Manager) {
		m.JumpTo(word)
		app.ShowSummary = false
	})
}

func (app *App) summaryHandler(c *gin.Context) {
	app.act(c, func(_ *session.Manager) {
		app.ShowSummary = !app.ShowSummary
	})
}

// act runs fn against the trainer and answers with the content fragment for
// htmx requests or a redirect home for plain form posts.
func (app *App) act(c *gin.Context, fn func(m *session.Manager)) {
	app.TrainerMutex.Lock()
	defer app.TrainerMutex.Unlock()

	if err := app.ensureTrainer(c.Request.Context()); err != nil {
		app.renderLoadError(c, err)
		return
	}
	fn(app.Trainer)

	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, TemplateContent, gin.H{
			"static": app.Config.StaticBasePath,
			"view":   app.buildView(),
		})
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}

func (app *App) renderLoadError(c *gin.Context, err error) {
	name := TemplatePage
	if c.GetHeader("HX-Request") == "true" {
		name = TemplateContent
	}
	c.HTML(http.StatusServiceUnavailable, name, gin.H{
		"title":     AppTitle,
		"static":    app.Config.StaticBasePath,
		"loadError": err.Error(),
	})
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	app.TrainerMutex.Lock()
	loadErr := ""
	if app.LoadErr != nil {
		loadErr = app.LoadErr.Error()
	}
	app.TrainerMutex.Unlock()

	status := "ok"
	if loadErr != "" {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       status,
		"env":          app.Config.EnvName(),
		"storage":      app.Config.StorageBackend,
		"words_loaded": app.loadedWordCount(),
		"load_error":   loadErr,
		"uptime":       formatUptime(time.Since(app.StartTime)),
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}
