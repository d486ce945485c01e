package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(file, []byte("cat\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cases := map[string]bool{
		dir:                          true,
		filepath.Join(dir, "dist"):   false,
		file:                         false,
		filepath.Join(file, "inner"): false,
	}
	for path, want := range cases {
		if got := dirExists(path); got != want {
			t.Errorf("dirExists(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		dur  time.Duration
		want string
	}{
		{0, "0 seconds"},
		{time.Second, "1 second"},
		{1500 * time.Millisecond, "1 second"},
		{59 * time.Second, "59 seconds"},
		{time.Minute, "1 minute, 0 seconds"},
		{2*time.Minute + time.Second, "2 minutes, 1 second"},
		{time.Hour + time.Minute + time.Second, "1 hour, 1 minute, 1 second"},
		{26*time.Hour + 30*time.Minute, "26 hours, 30 minutes, 0 seconds"},
	}
	for _, c := range cases {
		if got := formatUptime(c.dur); got != c.want {
			t.Errorf("formatUptime(%v) = %q, want %q", c.dur, got, c.want)
		}
	}
}

func TestPlural(t *testing.T) {
	for n, want := range map[int]string{0: "s", 1: "", 2: "s", 100: "s"} {
		if got := plural(n); got != want {
			t.Errorf("plural(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestHealthzReportsUptime(t *testing.T) {
	app, router := newTestApp(t, testWords)
	app.StartTime = time.Now().Add(-(2*time.Hour + 3*time.Minute + 30*time.Second))

	req := httptest.NewRequest(http.MethodGet, RouteHealth, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var health map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatal(err)
	}
	uptime, _ := health["uptime"].(string)
	if !strings.HasPrefix(uptime, "2 hours, 3 minutes, ") {
		t.Errorf("uptime = %q, want 2 hours, 3 minutes, ...", uptime)
	}
}
