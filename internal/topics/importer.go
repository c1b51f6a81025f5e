package topics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/docchat/docchat/internal/progress"
	"github.com/docchat/docchat/internal/sections"
)

// JSONTopic is the wire shape of one entry in an exported topic file.
type JSONTopic struct {
	Keyword string `json:"keyword"`
	Answer  string `json:"answer"`
}

// Importer loads topics into a Store from JSON exports or markdown trees.
type Importer struct {
	store    *Store
	reporter progress.Reporter
	md       goldmark.Markdown
}

// NewImporter creates an Importer writing into the given store.
func NewImporter(store *Store, reporter progress.Reporter) *Importer {
	return &Importer{
		store:    store,
		reporter: reporter,
		// Answers are authored by the document owner and rendered as
		// trusted HTML downstream, so raw HTML passthrough is enabled.
		md: goldmark.New(goldmark.WithRendererOptions(gmhtml.WithUnsafe())),
	}
}

// ImportJSON reads a JSON array of {keyword, answer} entries and stores
// them under the given document name. Answers are stored as-is.
func (im *Importer) ImportJSON(ctx context.Context, document, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	var entries []JSONTopic
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}

	im.reporter.Start(len(entries))
	defer im.reporter.Finish()

	imported := 0
	for i, e := range entries {
		if strings.TrimSpace(e.Keyword) == "" {
			continue
		}
		if _, err := im.store.Create(ctx, Topic{
			Document:   document,
			Keyword:    strings.TrimSpace(e.Keyword),
			AnswerHTML: e.Answer,
		}); err != nil {
			return imported, fmt.Errorf("storing topic %q: %w", e.Keyword, err)
		}
		imported++
		im.reporter.Update(i+1, e.Keyword)
	}
	return imported, nil
}

// ImportMarkdown walks dir for files matching the include globs, splits
// each file at its headings and stores one topic per section: the
// heading text is the keyword, the section body (rendered to HTML) is
// the answer. The document name is derived from the file name.
func (im *Importer) ImportMarkdown(ctx context.Context, dir string, include, exclude []string) (int, error) {
	if len(include) == 0 {
		include = []string{"**/*.md"}
	}

	files, err := matchFiles(dir, include, exclude)
	if err != nil {
		return 0, err
	}

	im.reporter.Start(len(files))
	defer im.reporter.Finish()

	imported := 0
	for i, path := range files {
		data, err := os.ReadFile(filepath.Join(dir, path))
		if err != nil {
			return imported, fmt.Errorf("reading %s: %w", path, err)
		}

		document := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		for _, sec := range splitSections(string(data)) {
			html, err := im.renderHTML(sec.Body)
			if err != nil {
				return imported, fmt.Errorf("rendering %s section %q: %w", path, sec.Heading, err)
			}
			if _, err := im.store.Create(ctx, Topic{
				Document:   document,
				Keyword:    sec.Heading,
				AnswerHTML: html,
			}); err != nil {
				return imported, fmt.Errorf("storing topic %q: %w", sec.Heading, err)
			}
			imported++
		}
		im.reporter.Update(i+1, path)
	}
	return imported, nil
}

// ImportHTML reads a pre-rendered HTML document, finds every heading
// element and stores one topic per heading: the heading text is the
// keyword, the fragment up to the next heading is the answer.
func (im *Importer) ImportHTML(ctx context.Context, document, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	htmlText := string(data)
	headings := headingTitles(htmlText)

	im.reporter.Start(len(headings))
	defer im.reporter.Finish()

	imported := 0
	for i, title := range headings {
		answer := sections.ExtractAfterHeading(htmlText, title, 0)
		if answer == "" {
			continue
		}
		if _, err := im.store.Create(ctx, Topic{
			Document:   document,
			Keyword:    title,
			AnswerHTML: answer,
		}); err != nil {
			return imported, fmt.Errorf("storing topic %q: %w", title, err)
		}
		imported++
		im.reporter.Update(i+1, title)
	}
	return imported, nil
}

var (
	htmlHeadingRegex = regexp.MustCompile(`(?is)<h[1-6][^>]*>(.*?)</h[1-6]>`)
	htmlTagRegex     = regexp.MustCompile(`<[^>]+>`)
)

// headingTitles returns the text of every h1..h6 element, in order,
// with duplicates removed. Only the first occurrence of a repeated
// heading is answerable.
func headingTitles(htmlText string) []string {
	seen := map[string]bool{}
	var titles []string
	for _, m := range htmlHeadingRegex.FindAllStringSubmatch(htmlText, -1) {
		title := strings.TrimSpace(htmlTagRegex.ReplaceAllString(m[1], ""))
		if title == "" || seen[strings.ToLower(title)] {
			continue
		}
		seen[strings.ToLower(title)] = true
		titles = append(titles, title)
	}
	return titles
}

func (im *Importer) renderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := im.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// matchFiles returns paths under dir matching any include glob and no
// exclude glob, relative to dir.
func matchFiles(dir string, include, exclude []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string

	for _, pattern := range include {
		matches, err := doublestar.Glob(os.DirFS(dir), pattern)
		if err != nil {
			return nil, fmt.Errorf("bad include pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || excluded(m, exclude) {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}

func excluded(path string, exclude []string) bool {
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// section is one heading-delimited slice of a markdown file.
type section struct {
	Heading string
	Level   int
	Body    string
}

var headingRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// splitSections splits markdown content at its headings. Text before
// the first heading is dropped; sections with empty bodies are kept so
// a bare heading still becomes an answerable keyword.
func splitSections(content string) []section {
	lines := strings.Split(content, "\n")
	var sections []section
	var current *section

	for _, line := range lines {
		if m := headingRegex.FindStringSubmatch(line); m != nil {
			if current != nil {
				current.Body = strings.TrimSpace(current.Body)
				sections = append(sections, *current)
			}
			current = &section{
				Heading: strings.TrimSpace(m[2]),
				Level:   len(m[1]),
			}
		} else if current != nil {
			current.Body += line + "\n"
		}
	}

	if current != nil {
		current.Body = strings.TrimSpace(current.Body)
		sections = append(sections, *current)
	}

	return sections
}
