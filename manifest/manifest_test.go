package manifest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/req-format/go-req/version"
)

func TestCanonical(t *testing.T) {
	for in, want := range map[string]string{
		"Django":                        "django",
		"South":                         "south",
		"backports.ssl-match-hostname":  "backports-ssl-match-hostname",
		"zope.interface":                "zope-interface",
		"Flask_SQLAlchemy":              "flask-sqlalchemy",
		"weird---name":                  "weird-name",
		"Mixed._-Runs":                  "mixed-runs",
		"requests":                      "requests",
	} {
		if got := Canonical(in); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", in, got, want)
		}
	}
}

func mustSpecs(t *testing.T, s string) version.Specifiers {
	t.Helper()
	ss, err := version.ParseSpecifiers(s)
	if err != nil {
		t.Fatal(err)
	}
	return ss
}

func reqLine(t *testing.T, name, spec string) Line {
	t.Helper()
	return Line{Kind: KindRequirement, Req: &Requirement{
		Name:       name,
		Specifiers: mustSpecs(t, spec),
	}}
}

func names(f *File) []string {
	var res []string
	for _, r := range f.Requirements() {
		res = append(res, r.Name)
	}
	return res
}

func TestFileAccessors(t *testing.T) {
	f := &File{Lines: []Line{
		{Kind: KindComment, Comment: "# pins"},
		reqLine(t, "Django", "==1.6.2"),
		{Kind: KindDirective, Dir: &Directive{Flag: "-r", Args: []string{"base.txt"}}},
		reqLine(t, "django", ">=1.6"),
	}}
	if got := f.Get("DJANGO"); got == nil || got.Name != "Django" {
		t.Errorf("Get returned %v", got)
	}
	if got := f.Get("south"); got != nil {
		t.Errorf("Get(south) = %v, want nil", got)
	}
	byName := f.ByName()
	if len(byName["django"]) != 2 {
		t.Errorf("ByName[django] has %d entries", len(byName["django"]))
	}
	dirs := f.Directives()
	if len(dirs) != 1 {
		t.Fatalf("got %d directives", len(dirs))
	}
	if inc, ok := dirs[0].Include(); !ok || inc != "base.txt" {
		t.Errorf("Include() = %q, %v", inc, ok)
	}
}

func TestSortRuns(t *testing.T) {
	f := &File{Lines: []Line{
		{Kind: KindComment, Comment: "# web"},
		reqLine(t, "wagtail", "==0.4.1"),
		reqLine(t, "Django", "==1.6.2"),
		{Kind: KindBlank},
		{Kind: KindComment, Comment: "# db"},
		reqLine(t, "South", "==0.8.4"),
		reqLine(t, "psycopg2", ">=2.5"),
	}}
	f.Sort()
	want := []string{"Django", "wagtail", "psycopg2", "South"}
	if diff := cmp.Diff(want, names(f)); diff != "" {
		t.Errorf("sorted names (-want +got):\n%s", diff)
	}
	// section markers stay in place
	if f.Lines[0].Kind != KindComment || f.Lines[3].Kind != KindBlank || f.Lines[4].Kind != KindComment {
		t.Error("sort moved a section boundary")
	}
}

func TestDedupe(t *testing.T) {
	f := &File{Lines: []Line{
		reqLine(t, "Django", "==1.6.2"),
		reqLine(t, "django", "==1.6.2"),
		reqLine(t, "South", "==0.8.4"),
		reqLine(t, "south", "==0.8.5"),
	}}
	f.Dedupe()
	want := []string{"Django", "South", "south"}
	if diff := cmp.Diff(want, names(f)); diff != "" {
		t.Errorf("after Dedupe (-want +got):\n%s", diff)
	}
}

func TestRequirementString(t *testing.T) {
	r := &Requirement{
		Name:       "requests",
		Extras:     []string{"security", "socks"},
		Specifiers: mustSpecs(t, "~=2.2"),
		Marker:     `python_version < "3"`,
		Options:    []string{"--hash=sha256:abc"},
	}
	want := `requests[security,socks]~=2.2 ; python_version < "3" --hash=sha256:abc`
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	u := &Requirement{Name: "sentry-sdk", URL: "https://example.com/sdk.tar.gz"}
	if got := u.String(); got != "sentry-sdk @ https://example.com/sdk.tar.gz" {
		t.Errorf("String() = %q", got)
	}
}

func TestDocRoundTrip(t *testing.T) {
	f := &File{Lines: []Line{
		{Kind: KindDirective, Dir: &Directive{Flag: "--index-url", Args: []string{"https://pypi.example.org/simple"}}},
		reqLine(t, "Django", "==1.6.2"),
		reqLine(t, "elasticsearch", "<1.0"),
	}}
	got, err := FromDoc(f.Doc())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(f.Doc(), got.Doc()); diff != "" {
		t.Errorf("doc round trip (-want +got):\n%s", diff)
	}
	// directives come first in the materialized file
	if got.Lines[0].Kind != KindDirective {
		t.Error("directives should lead")
	}
}

func TestClone(t *testing.T) {
	f := &File{Lines: []Line{reqLine(t, "Django", "==1.6.2")}}
	c := f.Clone()
	c.Lines[0].Req.Name = "south"
	c.Lines[0].Req.Specifiers[0].Version = "9.9"
	if f.Lines[0].Req.Name != "Django" || f.Lines[0].Req.Specifiers[0].Version != "1.6.2" {
		t.Error("Clone shares state with the original")
	}
}
