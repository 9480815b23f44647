package utils

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// WithUnsafe: editors paste rich HTML snippets into post bodies.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

func RenderMarkdown(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// stripMarkup removes markdown and HTML formatting for excerpt generation.
func stripMarkup(md string) string {
	re := regexp.MustCompile(`(\[!\[.*?\]\(.*?\)\])|(\[.*?\]\(.*?\))`)
	md = re.ReplaceAllString(md, "")
	re = regexp.MustCompile(`<[^>]*>`)
	md = re.ReplaceAllString(md, "")
	re = regexp.MustCompile("(?m)[*#>`~]")
	md = re.ReplaceAllString(md, "")
	re = regexp.MustCompile(`\s+`)
	md = re.ReplaceAllString(md, " ")
	return strings.TrimSpace(md)
}

// GenerateExcerpt produces a plain-text preview used when an editor leaves
// the excerpt field empty.
func GenerateExcerpt(md string, length int) string {
	plainText := stripMarkup(md)
	runes := []rune(plainText)
	if len(runes) > length {
		return string(runes[:length]) + "..."
	}
	return string(runes)
}
