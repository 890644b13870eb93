package encode

import "github.com/req-format/go-req/format"

type EncodeOption func(*encState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *encState) { es.format = f }
}

// EncodeComments controls whether comment and blank lines are kept.
func EncodeComments(v bool) EncodeOption {
	return func(es *encState) { es.comments = v }
}

// EncodeSort orders requirement runs by canonical name before writing.
func EncodeSort(v bool) EncodeOption {
	return func(es *encState) { es.sort = v }
}

// EncodeCanonical rewrites project names to their canonical form.
func EncodeCanonical(v bool) EncodeOption {
	return func(es *encState) { es.canonical = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *encState) { es.colors = c }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &encState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}
