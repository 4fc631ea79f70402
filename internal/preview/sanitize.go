package preview

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"cheatsheet-editor/internal/blobstore"
)

var classPattern = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)

// newPolicy builds the strict allow-list the final HTML is scrubbed with.
// Scripts and unknown URI schemes stay forbidden; the local-reference scheme
// and inline data images are explicitly allowed for image sources, since
// references are fully resolved before this pass and data payloads come from
// the local store.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	p.AllowURLSchemes(blobstore.Scheme)
	// chroma highlight spans and the image-missing marker
	p.AllowAttrs("class").Matching(classPattern).OnElements("img", "code", "pre", "span", "div")
	return p
}
