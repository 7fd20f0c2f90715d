package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-ranker/internal/types"
)

// TextExtractor turns a raw document into plain text
type TextExtractor interface {
	ExtractText(ctx context.Context, doc types.Document) (string, error)
}

// ExtractionError reports a document that yielded no usable text
type ExtractionError struct {
	Name    string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot extract text from %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("cannot extract text from %s: %s", e.Name, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// PlainTextExtractor accepts UTF-8 text documents
type PlainTextExtractor struct{}

// ExtractText validates and cleans the document bytes
func (PlainTextExtractor) ExtractText(ctx context.Context, doc types.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !utf8.Valid(doc.Data) || bytes.IndexByte(doc.Data, 0) >= 0 {
		return "", &ExtractionError{Name: doc.Name, Message: "binary or non UTF-8 content"}
	}
	return nonEmpty(doc.Name, CleanText(string(doc.Data)))
}

// noiseSelectors are removed before text extraction
const noiseSelectors = "nav, footer, script, style, noscript, .ad, .advertisement, .sidebar, .cookie-banner, .popup"

// HTMLExtractor extracts the visible text of an HTML document. The first matching
// content selector is used, otherwise the whole body.
type HTMLExtractor struct {
	ContentSelectors []string
}

// NewHTMLExtractor uses selectors typical of résumé exports and job boards
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{ContentSelectors: []string{
		".resume", "#resume", ".job-description", "#job-description", "main", "article", ".content", "#content",
	}}
}

// ExtractText parses the HTML and returns its cleaned text, one block per line
func (h *HTMLExtractor) ExtractText(ctx context.Context, doc types.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Data))
	if err != nil {
		return "", &ExtractionError{Name: doc.Name, Message: "failed to parse HTML", Cause: err}
	}
	parsed.Find(noiseSelectors).Remove()

	var main *goquery.Selection
	for _, selector := range h.ContentSelectors {
		if sel := parsed.Find(selector); sel.Length() > 0 {
			main = sel.First()
			break
		}
	}
	if main == nil {
		main = parsed.Find("body")
	}

	// block elements end a line; headings also open a new paragraph
	main.Find("p, div, li, h1, h2, h3, h4, h5, h6, br, tr, section").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	main.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml(paragraphMark)
	})
	main.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})

	return nonEmpty(doc.Name, CleanText(joinBlocks(main.Text())))
}

// paragraphMark is U+2029 PARAGRAPH SEPARATOR as an HTML entity
const paragraphMark = "&#8233;"

// joinBlocks drops the blank lines left by markup indentation and puts one blank line
// before each heading, so sections end at the next heading.
func joinBlocks(text string) string {
	var out []string
	heading := false
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "\u2029") {
			heading = true
			line = strings.ReplaceAll(line, "\u2029", "")
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if heading && len(out) > 0 {
			out = append(out, "")
		}
		heading = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// AutoExtractor picks an extractor by file extension. Unknown extensions are tried as
// plain text, which rejects binary formats.
type AutoExtractor struct {
	Text TextExtractor
	HTML TextExtractor
}

// NewAutoExtractor wires the plain-text and HTML extractors
func NewAutoExtractor() *AutoExtractor {
	return &AutoExtractor{Text: PlainTextExtractor{}, HTML: NewHTMLExtractor()}
}

// ExtractText dispatches on the document name
func (a *AutoExtractor) ExtractText(ctx context.Context, doc types.Document) (string, error) {
	switch strings.ToLower(filepath.Ext(doc.Name)) {
	case ".html", ".htm", ".xhtml":
		return a.HTML.ExtractText(ctx, doc)
	default:
		return a.Text.ExtractText(ctx, doc)
	}
}

func nonEmpty(name, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{Name: name, Message: "document contains no text"}
	}
	return text, nil
}
