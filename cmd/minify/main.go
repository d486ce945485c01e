// Command minify writes minified copies of templates/ and static/ into dist/,
// which the server prefers in production mode.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

var mediaTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
}

func main() {
	var (
		outDir = flag.String("out", "dist", "Output directory")
		dirs   = flag.String("dirs", "templates,static", "Comma-separated source directories")
	)
	flag.Parse()

	m := newMinifier()
	for _, dir := range strings.Split(*dirs, ",") {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		if err := minifyTree(m, dir, filepath.Join(*outDir, dir)); err != nil {
			log.Fatalf("Failed to minify %s: %v", dir, err)
		}
	}
	fmt.Printf("Minified assets are in %s\n", *outDir)
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	// Templates carry Go actions; leave {{ ... }} untouched.
	m.Add("text/html", &html.Minifier{TemplateDelims: html.GoTemplateDelims})
	m.AddFunc("application/javascript", js.Minify)
	return m
}

// minifyTree mirrors src into dst, minifying files with a known media type
// and copying the rest unchanged.
func minifyTree(m *minify.M, src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return minifyFile(m, path, target)
	})
}

func minifyFile(m *minify.M, srcPath, dstPath string) error {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	out := src
	if mediaType, ok := mediaTypes[strings.ToLower(filepath.Ext(srcPath))]; ok {
		out, err = m.Bytes(mediaType, src)
		if err != nil {
			return fmt.Errorf("%s: %w", srcPath, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(dstPath, out, 0644); err != nil {
		return err
	}

	if len(src) > 0 && len(out) != len(src) {
		ratio := float64(len(src)-len(out)) / float64(len(src)) * 100
		fmt.Printf("%s: %d bytes → %d bytes (%.1f%% reduction)\n", srcPath, len(src), len(out), ratio)
	}
	return nil
}
