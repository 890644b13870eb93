package diff

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/req-format/go-req/manifest"
)

// Patch applies an RFC 6902 JSON patch to the manifest's interop form
// and materializes the result. Layout (blank lines, standalone
// comments) is not preserved across a patch.
func Patch(f *manifest.File, patchJSON []byte) (*manifest.File, error) {
	p, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, fmt.Errorf("bad patch: %w", err)
	}
	d, err := json.Marshal(f.Doc())
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("patch failed: %w", err)
	}
	var doc manifest.Doc
	if err := json.Unmarshal(out, &doc); err != nil {
		return nil, fmt.Errorf("patch produced a bad document: %w", err)
	}
	return manifest.FromDoc(&doc)
}
