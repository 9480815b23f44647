//go:build ignore

// Asset pipeline: run with `go run build.go -release` before building with
// the release tag to minify the css/js that gets embedded.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

var (
	m                 = minify.New()
	assetReplacements = map[string]string{
		"css/style.css": "css/style.min.css",
		"js/main.js":    "js/main.min.js",
	}
)

func init() {
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/javascript", js.Minify)
}

func main() {
	release := flag.Bool("release", false, "Process assets for release")
	clean := flag.Bool("clean", false, "Remove minified assets")
	flag.Parse()

	if *release && *clean {
		log.Fatal("Cannot use -release and -clean flags simultaneously.")
	}

	switch {
	case *release:
		fmt.Println("Processing assets for release...")
		if err := processAssets(); err != nil {
			log.Fatalf("Failed to process assets: %v", err)
		}
		fmt.Println("Assets processed successfully.")
	case *clean:
		fmt.Println("Cleaning up minified assets...")
		if err := cleanupAssets(); err != nil {
			log.Fatalf("Failed to clean up assets: %v", err)
		}
		fmt.Println("Cleanup complete.")
	default:
		fmt.Println("No action specified. Use -release to process assets or -clean to clean up.")
	}
}

func processAssets() error {
	for src, dst := range assetReplacements {
		srcPath := filepath.Join("static", src)
		dstPath := filepath.Join("static", dst)

		data, err := os.ReadFile(srcPath)
		if err != nil {
			return err
		}

		mediatype := "text/css"
		if strings.HasSuffix(src, ".js") {
			mediatype = "text/javascript"
		}

		minified, err := m.Bytes(mediatype, data)
		if err != nil {
			return fmt.Errorf("minify %s: %w", src, err)
		}

		if err := os.WriteFile(dstPath, minified, 0o644); err != nil {
			return err
		}
		fmt.Printf("  %s -> %s\n", srcPath, dstPath)
	}
	return nil
}

func cleanupAssets() error {
	for _, dst := range assetReplacements {
		path := filepath.Join("static", dst)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
