package req

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/req-format/go-req/encode"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	f, err := Load([]byte("Django==1.6.2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if f.Get("django") == nil {
		t.Error("no django requirement")
	}
}

func TestFlatten(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.txt", "Django==1.6.2\nSouth==0.8.4\n")
	top := writeFile(t, dir, "production.txt", "-r base.txt\npsycopg2>=2.5\n")

	f, err := Flatten(top)
	if err != nil {
		t.Fatal(err)
	}
	want := "Django==1.6.2\nSouth==0.8.4\npsycopg2>=2.5\n"
	if diff := cmp.Diff(want, encode.MustString(f)); diff != "" {
		t.Errorf("flattened (-want +got):\n%s", diff)
	}
}

func TestFlattenNested(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "reqs")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "base.txt", "Django==1.6.2\n")
	writeFile(t, sub, "dev.txt", "-r base.txt\ndjango-debug-toolbar==1.0.1\n")
	top := writeFile(t, dir, "requirements.txt", "-r reqs/dev.txt\n")

	f, err := Flatten(top)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Requirements()) != 2 {
		t.Errorf("got %d requirements", len(f.Requirements()))
	}
	if len(f.Directives()) != 0 {
		t.Error("include directives should be consumed")
	}
}

func TestFlattenKeepsOtherDirectives(t *testing.T) {
	dir := t.TempDir()
	top := writeFile(t, dir, "requirements.txt", "--index-url https://pypi.example.org/simple\nDjango==1.6.2\n")

	f, err := Flatten(top)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Directives()) != 1 {
		t.Error("non-include directives should survive")
	}
}

func TestFlattenCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "-r b.txt\n")
	writeFile(t, dir, "b.txt", "-r a.txt\n")

	_, err := Flatten(filepath.Join(dir, "a.txt"))
	if err == nil {
		t.Fatal("no error for include cycle")
	}
	if !strings.Contains(err.Error(), "cycle") {
		t.Errorf("err = %v", err)
	}
}

func TestFlattenSharedInclude(t *testing.T) {
	// diamond includes are fine, only cycles are not
	dir := t.TempDir()
	writeFile(t, dir, "base.txt", "Django==1.6.2\n")
	writeFile(t, dir, "a.txt", "-r base.txt\n")
	writeFile(t, dir, "b.txt", "-r base.txt\n")
	top := writeFile(t, dir, "all.txt", "-r a.txt\n-r b.txt\n")

	f, err := Flatten(top)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Requirements()) != 2 {
		t.Errorf("got %d requirements", len(f.Requirements()))
	}
}
