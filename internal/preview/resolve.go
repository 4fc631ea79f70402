package preview

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"cheatsheet-editor/internal/blobstore"
	"cheatsheet-editor/pkg/logger"
)

// PlaceholderImage is a 1x1 transparent GIF shown for references whose
// payload is missing from the local store.
const PlaceholderImage = "data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7"

// MissingClass marks image tags whose reference could not be resolved.
const MissingClass = "image-missing"

const resolveLimit = 8

// resolve fans out one store lookup per id, bounded by resolveLimit. A
// failed or absent lookup never aborts the others: such ids land in failed
// and render as placeholders.
func (r *Renderer) resolve(ctx context.Context, ids []string) (map[string]string, []string) {
	type lookup struct {
		payload []byte
		ok      bool
		err     error
	}

	results := make([]lookup, len(ids))
	g := new(errgroup.Group)
	g.SetLimit(resolveLimit)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			payload, ok, err := r.store.Get(ctx, id)
			results[i] = lookup{payload: payload, ok: ok, err: err}
			return nil
		})
	}
	g.Wait()

	resolved := make(map[string]string, len(ids))
	var failed []string
	for i, id := range ids {
		res := results[i]
		switch {
		case res.err != nil:
			logger.Sugar.Warnf("resolving image %s: %v", id, res.err)
			failed = append(failed, id)
		case !res.ok:
			failed = append(failed, id)
		default:
			resolved[id] = dataURI(res.payload)
		}
	}
	return resolved, failed
}

// substitute textually replaces every occurrence of each reference. Failed
// ids get their image tags rewritten to the placeholder with the missing
// marker; stray non-tag occurrences fall back to a plain replacement.
func substitute(html string, resolved map[string]string, failed []string) string {
	for id, uri := range resolved {
		html = strings.ReplaceAll(html, blobstore.URI(id), uri)
	}
	for _, id := range failed {
		tag := regexp.MustCompile(`(<img\b[^>]*?)src="` + regexp.QuoteMeta(blobstore.URI(id)) + `"`)
		html = tag.ReplaceAllString(html, `${1}class="`+MissingClass+`" src="`+PlaceholderImage+`"`)
		html = strings.ReplaceAll(html, blobstore.URI(id), PlaceholderImage)
	}
	return html
}

// dataURI materializes a stored payload as an inline image source. Payloads
// pasted as data URLs are stored verbatim; raw image bytes get sniffed and
// base64-wrapped.
func dataURI(payload []byte) string {
	if bytes.HasPrefix(payload, []byte("data:")) {
		return string(payload)
	}
	contentType := http.DetectContentType(payload)
	if !strings.HasPrefix(contentType, "image/") {
		contentType = "image/png"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(payload)
}
