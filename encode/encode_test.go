package encode

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"

	"github.com/req-format/go-req/format"
	"github.com/req-format/go-req/manifest"
	"github.com/req-format/go-req/parse"
)

const fixture = `# deployment pins
Django==1.6.2
South==0.8.4

wagtail==0.4.1  # CMS
psycopg2>=2.5,<2.6
typing ; python_version < "3.5"
-r base.txt
`

func parseFixture(t *testing.T) *manifest.File {
	t.Helper()
	f, err := parse.Parse([]byte(fixture))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestEncodeTextRoundTrip(t *testing.T) {
	f := parseFixture(t)
	got := MustString(f)
	if diff := cmp.Diff(fixture, got); diff != "" {
		t.Errorf("text round trip (-want +got):\n%s", diff)
	}
}

func TestEncodeSorted(t *testing.T) {
	f := parseFixture(t)
	got := MustString(f, EncodeSort(true))
	want := `# deployment pins
Django==1.6.2
South==0.8.4

psycopg2>=2.5,<2.6
typing ; python_version < "3.5"
wagtail==0.4.1  # CMS
-r base.txt
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sorted (-want +got):\n%s", diff)
	}
	// sorting must not reorder the caller's file
	if f.Requirements()[2].Name != "wagtail" {
		t.Error("Encode mutated its input")
	}
}

func TestEncodeStripComments(t *testing.T) {
	got := MustString(parseFixture(t), EncodeComments(false))
	want := `Django==1.6.2
South==0.8.4
wagtail==0.4.1
psycopg2>=2.5,<2.6
typing ; python_version < "3.5"
-r base.txt
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stripped (-want +got):\n%s", diff)
	}
}

func TestEncodeCanonicalNames(t *testing.T) {
	f, err := parse.Parse([]byte("Django==1.6.2\nbackports.ssl-match-hostname==3.4.0.2\n"))
	if err != nil {
		t.Fatal(err)
	}
	got := MustString(f, EncodeCanonical(true))
	want := "django==1.6.2\nbackports-ssl-match-hostname==3.4.0.2\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("canonical (-want +got):\n%s", diff)
	}
}

func TestEncodeJSON(t *testing.T) {
	var b strings.Builder
	if err := Encode(parseFixture(t), &b, EncodeFormat(format.JSONFormat)); err != nil {
		t.Fatal(err)
	}
	var doc manifest.Doc
	if err := json.Unmarshal([]byte(b.String()), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Requirements) != 5 || len(doc.Directives) != 1 {
		t.Fatalf("got %d requirements, %d directives", len(doc.Requirements), len(doc.Directives))
	}
	if doc.Requirements[0].Name != "Django" || doc.Requirements[0].Constraint != "==1.6.2" {
		t.Errorf("first requirement: %+v", doc.Requirements[0])
	}
}

func TestEncodeYAML(t *testing.T) {
	var b strings.Builder
	if err := Encode(parseFixture(t), &b, EncodeFormat(format.YAMLFormat)); err != nil {
		t.Fatal(err)
	}
	var doc manifest.Doc
	if err := yaml.Unmarshal([]byte(b.String()), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Requirements) != 5 {
		t.Fatalf("got %d requirements", len(doc.Requirements))
	}
	if doc.Requirements[3].Constraint != ">=2.5,<2.6" {
		t.Errorf("psycopg2 constraint = %q", doc.Requirements[3].Constraint)
	}
}

func TestEncodeTOML(t *testing.T) {
	var b strings.Builder
	if err := Encode(parseFixture(t), &b, EncodeFormat(format.TOMLFormat)); err != nil {
		t.Fatal(err)
	}
	var p struct {
		Project struct {
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal([]byte(b.String()), &p); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"Django==1.6.2",
		"South==0.8.4",
		"wagtail==0.4.1",
		"psycopg2>=2.5,<2.6",
		`typing ; python_version < "3.5"`,
	}
	if diff := cmp.Diff(want, p.Project.Dependencies); diff != "" {
		t.Errorf("dependencies (-want +got):\n%s", diff)
	}
}

func TestColorsOff(t *testing.T) {
	// a nil Colors map must render plain text
	got := MustString(parseFixture(t), EncodeColors(nil))
	if strings.Contains(got, "\x1b[") {
		t.Error("unexpected escape sequences")
	}
}
