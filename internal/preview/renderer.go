package preview

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"cheatsheet-editor/internal/blobstore"
	"cheatsheet-editor/internal/document"
)

// Result is the fully materialized preview: sanitized HTML with every image
// reference resolved, plus the inline style carrying the layout preferences.
type Result struct {
	HTML      string
	Style     string
	FailedIDs []string
}

type Renderer struct {
	store  blobstore.Store
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer(store blobstore.Store) *Renderer {
	return &Renderer{
		store: store,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
					highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
				),
			),
			goldmark.WithRendererOptions(
				ghtml.WithHardWraps(),
				// Raw HTML passes through here and is scrubbed by the
				// sanitize pass below, mirroring the render-then-purify
				// pipeline of the browser generation.
				ghtml.WithUnsafe(),
			),
		),
		policy: newPolicy(),
	}
}

// Render converts the document to displayable HTML. Every indexeddb://
// reference is substituted before the result is handed back: resolved ids
// become inline data images, unresolved ones a placeholder marked with the
// image-missing class. There is no partial reveal.
func (r *Renderer) Render(ctx context.Context, doc document.Document) (Result, error) {
	doc.Clamp()

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(doc.Text), &buf); err != nil {
		return Result{}, fmt.Errorf("rendering markdown: %w", err)
	}
	html := buf.String()

	ids := blobstore.ReferencedIDs(html)
	resolved, failed := r.resolve(ctx, ids)
	html = substitute(html, resolved, failed)

	return Result{
		HTML:      r.policy.Sanitize(html),
		Style:     inlineStyle(doc),
		FailedIDs: failed,
	}, nil
}

func inlineStyle(doc document.Document) string {
	return fmt.Sprintf("font-size: %dpx; column-count: %d; column-gap: 24px;",
		doc.FontSize, doc.Columns)
}
