package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/req-format/go-req/manifest"
)

const base = `# deployment pins
Django==1.6.2
South==0.8.4

wagtail==0.4.1  # CMS
psycopg2>=2.5,<2.6
requests[security]~=2.2
typing; python_version < "3.5"
sentry-sdk @ https://example.com/sentry-sdk.tar.gz
-r base.txt
django-redis==3.6.2 --hash=sha256:abc123
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(base))
	if err != nil {
		t.Fatal(err)
	}
	kinds := make([]manifest.LineKind, len(f.Lines))
	for i, ln := range f.Lines {
		kinds[i] = ln.Kind
	}
	wantKinds := []manifest.LineKind{
		manifest.KindComment,
		manifest.KindRequirement,
		manifest.KindRequirement,
		manifest.KindBlank,
		manifest.KindRequirement,
		manifest.KindRequirement,
		manifest.KindRequirement,
		manifest.KindRequirement,
		manifest.KindRequirement,
		manifest.KindDirective,
		manifest.KindRequirement,
	}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("line kinds (-want +got):\n%s", diff)
	}

	if f.Lines[0].Comment != " deployment pins" {
		t.Errorf("comment = %q", f.Lines[0].Comment)
	}

	dj := f.Get("django")
	if dj == nil {
		t.Fatal("no django requirement")
	}
	if pin, ok := dj.Pinned(); !ok || pin != "1.6.2" {
		t.Errorf("django pin = %q, %v", pin, ok)
	}

	wt := f.Get("wagtail")
	if wt.Comment != " CMS" {
		t.Errorf("wagtail comment = %q", wt.Comment)
	}

	pg := f.Get("psycopg2")
	if got := pg.Specifiers.String(); got != ">=2.5,<2.6" {
		t.Errorf("psycopg2 constraint = %q", got)
	}

	rq := f.Get("requests")
	if diff := cmp.Diff([]string{"security"}, rq.Extras); diff != "" {
		t.Errorf("extras (-want +got):\n%s", diff)
	}

	ty := f.Get("typing")
	if ty.Marker != `python_version < "3.5"` {
		t.Errorf("marker = %q", ty.Marker)
	}

	sdk := f.Get("sentry-sdk")
	if sdk.URL != "https://example.com/sentry-sdk.tar.gz" {
		t.Errorf("url = %q", sdk.URL)
	}
	if len(sdk.Specifiers) != 0 {
		t.Errorf("url requirement has specifiers %v", sdk.Specifiers)
	}

	dirs := f.Directives()
	if len(dirs) != 1 {
		t.Fatalf("got %d directives", len(dirs))
	}
	if inc, ok := dirs[0].Include(); !ok || inc != "base.txt" {
		t.Errorf("Include() = %q, %v", inc, ok)
	}

	dr := f.Get("django-redis")
	if diff := cmp.Diff([]string{"--hash=sha256:abc123"}, dr.Options); diff != "" {
		t.Errorf("options (-want +got):\n%s", diff)
	}
}

func TestParsePositions(t *testing.T) {
	f, err := Parse([]byte("Django==1.6.2\nSouth==0.8.4\n"))
	if err != nil {
		t.Fatal(err)
	}
	s := f.Get("south")
	if s.Pos == nil {
		t.Fatal("no position")
	}
	if l, c := s.Pos.LineCol(); l != 1 || c != 0 {
		t.Errorf("south at %d:%d, want 1:0", l, c)
	}
}

func TestParseErr(t *testing.T) {
	_, err := Parse([]byte("django=1.6\n"))
	if err == nil {
		t.Fatal("no error")
	}
}

func TestParseKeepGoing(t *testing.T) {
	var errs []error
	f, err := Parse([]byte("django=1.6\nSouth==0.8.4\nrequests[open\n"), KeepGoing(&errs))
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	reqs := f.Requirements()
	if len(reqs) != 1 || reqs[0].Name != "South" {
		t.Errorf("kept requirements: %v", reqs)
	}
}
