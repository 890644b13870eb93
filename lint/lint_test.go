package lint

import (
	"strings"
	"testing"
)

func check(t *testing.T, cfg *Config, src string) []Diagnostic {
	t.Helper()
	l, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ds, err := l.Check([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func byCode(ds []Diagnostic) map[string][]Diagnostic {
	res := map[string][]Diagnostic{}
	for _, d := range ds {
		res[d.Code] = append(res[d.Code], d)
	}
	return res
}

func TestCheckClean(t *testing.T) {
	ds := check(t, nil, "Django==1.6.2\nSouth==0.8.4\n")
	if len(ds) != 0 {
		t.Errorf("clean manifest produced %v", ds)
	}
}

func TestCheckSyntax(t *testing.T) {
	ds := check(t, nil, "django=1.6\nSouth==0.8.4\n")
	got := byCode(ds)
	if len(got[CodeSyntax]) != 1 {
		t.Fatalf("syntax diagnostics: %v", ds)
	}
	d := got[CodeSyntax][0]
	if d.Severity != SeverityError {
		t.Errorf("severity = %s", d.Severity)
	}
	if d.Pos == nil {
		t.Error("syntax diagnostic has no position")
	}
}

func TestCheckConflict(t *testing.T) {
	ds := check(t, nil, "Django==1.6.2\ndjango==1.7\n")
	got := byCode(ds)
	if len(got[CodeConflict]) != 1 {
		t.Fatalf("conflict diagnostics: %v", ds)
	}
	if !Errors(ds) {
		t.Error("conflicting pins should be an error")
	}
	if !strings.Contains(got[CodeConflict][0].Message, "==1.6.2") {
		t.Errorf("message = %q", got[CodeConflict][0].Message)
	}
}

func TestCheckDuplicate(t *testing.T) {
	// same pin twice: a duplicate, not a conflict
	ds := check(t, nil, "Django==1.6.2\ndjango==1.6.2\n")
	got := byCode(ds)
	if len(got[CodeConflict]) != 0 || len(got[CodeDuplicate]) != 1 {
		t.Fatalf("diagnostics: %v", ds)
	}
	if got[CodeDuplicate][0].Severity != SeverityInfo {
		t.Errorf("severity = %s", got[CodeDuplicate][0].Severity)
	}
}

func TestCheckUnpinned(t *testing.T) {
	ds := check(t, nil, "Django==1.6.2\nelasticsearch<1.0\nrequests\n")
	got := byCode(ds)
	if len(got[CodeUnpinned]) != 2 {
		t.Fatalf("unpinned diagnostics: %v", ds)
	}
	if Errors(ds) {
		t.Error("unpinned is a warning, not an error")
	}
}

func TestCheckBadVersion(t *testing.T) {
	ds := check(t, nil, "django==not.a.version\nsouth>=1.*\n")
	got := byCode(ds)
	if len(got[CodeBadVersion]) != 2 {
		t.Fatalf("bad-version diagnostics: %v", ds)
	}
}

func TestDisable(t *testing.T) {
	cfg := &Config{Disable: []string{CodeUnpinned}}
	ds := check(t, cfg, "elasticsearch<1.0\n")
	if len(ds) != 0 {
		t.Errorf("disabled check still fired: %v", ds)
	}
}

func TestSeverityOverride(t *testing.T) {
	cfg := &Config{Severity: map[string]Severity{CodeUnpinned: SeverityError}}
	ds := check(t, cfg, "elasticsearch<1.0\n")
	if len(ds) != 1 || ds[0].Severity != SeverityError {
		t.Errorf("diagnostics: %v", ds)
	}
}

func TestRules(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
rules:
  - id: no-url
    severity: error
    when: URL != ""
    message: direct URLs are not allowed here
  - id: hash-required
    severity: warning
    when: Pinned && !HasHash
`))
	if err != nil {
		t.Fatal(err)
	}
	ds := check(t, cfg, "sdk @ https://example.com/sdk.tar.gz\nDjango==1.6.2\nredis==3.6.2 --hash=sha256:abc\n")
	got := byCode(ds)
	if len(got["no-url"]) != 1 {
		t.Fatalf("no-url diagnostics: %v", ds)
	}
	if !strings.Contains(got["no-url"][0].Message, "direct URLs") {
		t.Errorf("message = %q", got["no-url"][0].Message)
	}
	if len(got["hash-required"]) != 1 {
		t.Fatalf("hash-required diagnostics: %v", ds)
	}
	if !strings.HasPrefix(got["hash-required"][0].Message, "Django") {
		t.Errorf("message = %q", got["hash-required"][0].Message)
	}
}

func TestRuleCompileErr(t *testing.T) {
	_, err := New(&Config{Rules: []RuleConfig{{ID: "bad", When: "Name +"}}})
	if err == nil {
		t.Fatal("no error for bad expression")
	}
}

func TestParseConfigErrs(t *testing.T) {
	for _, bad := range []string{
		"rules:\n  - when: URL != \"\"\n",
		"rules:\n  - id: x\n",
		"severity:\n  unpinned: loud\n",
	} {
		if _, err := ParseConfig([]byte(bad)); err == nil {
			t.Errorf("no error for %q", bad)
		}
	}
}

func TestDiagnosticString(t *testing.T) {
	ds := check(t, nil, "Django==1.6.2\ndjango==1.7\n")
	if len(ds) != 1 {
		t.Fatal(ds)
	}
	s := ds[0].String()
	if !strings.HasPrefix(s, "2:1: error: ") {
		t.Errorf("String() = %q", s)
	}
}
