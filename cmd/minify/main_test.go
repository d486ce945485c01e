package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMinifyTree(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "dist")

	files := map[string]string{
		"page.html":   "<html>\n\t<head>\n\t\t<title>Test</title>\n\t</head>\n\t<body>\n\t\t<p> Hello   World! </p>\n\t</body>\n</html>",
		"css/app.css": "body {\n\tcolor: #ff0000;\n}\n",
		"js/app.js":   "var answer = 1 + 1;\n\n// comment\n",
		"robots.txt":  "User-agent: *\n",
	}
	for name, content := range files {
		path := filepath.Join(src, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := minifyTree(newMinifier(), src, dst); err != nil {
		t.Fatalf("minifyTree failed: %v", err)
	}

	read := func(name string) string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(dst, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(data)
	}

	if got := strings.ReplaceAll(read("page.html"), "\n", ""); got != "<title>Test</title><p>Hello World!" {
		t.Errorf("html = %q", got)
	}
	if got := read("css/app.css"); strings.Contains(got, "\n\t") || len(got) >= len(files["css/app.css"]) {
		t.Errorf("css = %q", got)
	}
	if got := read("js/app.js"); strings.Contains(got, "comment") {
		t.Errorf("js comment survived: %q", got)
	}
	if got := read("robots.txt"); got != files["robots.txt"] {
		t.Errorf("unknown type was altered: %q", got)
	}
}

func TestMinifyTreeMissingSource(t *testing.T) {
	if err := minifyTree(newMinifier(), filepath.Join(t.TempDir(), "nope"), t.TempDir()); err == nil {
		t.Error("expected error for missing source directory")
	}
}
