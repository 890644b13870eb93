package token

import (
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	s := `# deployment pins
Django==1.6.2
South==0.8.4

wagtail==0.4.1  # CMS
elasticsearch<1.0
psycopg2>=2.5,<2.6
requests[security]~=2.2
typing; python_version < "3.5"
sentry-sdk @ https://example.com/sentry-sdk.tar.gz
-r base.txt
--index-url https://pypi.example.org/simple
django-redis==3.6.2 --hash=sha256:abc123
backports.ssl-match-hostname==3.4.0.2
pillow==2.3.0 \
  ; python_version < "3.0"
`
	toks, err := Tokenize([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	want := []TokenType{
		TComment, TNewline,
		TName, TOp, TVersion, TNewline,
		TName, TOp, TVersion, TNewline,
		TNewline,
		TName, TOp, TVersion, TComment, TNewline,
		TName, TOp, TVersion, TNewline,
		TName, TOp, TVersion, TComma, TOp, TVersion, TNewline,
		TName, TExtras, TOp, TVersion, TNewline,
		TName, TSemi, TMarker, TNewline,
		TName, TAt, TURL, TNewline,
		TFlag, TArg, TNewline,
		TFlag, TArg, TNewline,
		TName, TOp, TVersion, TOption, TNewline,
		TName, TOp, TVersion, TNewline,
		TName, TOp, TVersion, TSemi, TMarker, TNewline,
	}
	if len(toks) != len(want) {
		for _, tok := range toks {
			t.Log(tok.Info())
		}
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Errorf("token %d: got %s, want %s (%s)", i, tok.Type, want[i], tok.Pos)
		}
	}
}

func TestTokenizeValues(t *testing.T) {
	toks, err := Tokenize([]byte(`requests[security,socks] ~= 2.2 ; python_version < "3" # http`))
	if err != nil {
		t.Fatal(err)
	}
	got := map[TokenType]string{}
	for _, tok := range toks {
		got[tok.Type] = tok.String()
	}
	for ty, want := range map[TokenType]string{
		TName:    "requests",
		TExtras:  "[security,socks]",
		TOp:      "~=",
		TVersion: "2.2",
		TMarker:  `python_version < "3"`,
		TComment: "# http",
	} {
		if got[ty] != want {
			t.Errorf("%s: got %q, want %q", ty, got[ty], want)
		}
	}
}

func TestTokenizeCRLF(t *testing.T) {
	toks, err := Tokenize([]byte("# pins\r\nDjango==1.6.2\r\nwagtail==0.4.1  # CMS\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []TokenType{
		TComment, TNewline,
		TName, TOp, TVersion, TNewline,
		TName, TOp, TVersion, TComment, TNewline,
	}
	if len(toks) != len(want) {
		for _, tok := range toks {
			t.Log(tok.Info())
		}
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Errorf("token %d: got %s, want %s (%s)", i, tok.Type, want[i], tok.Pos)
		}
	}
	// carriage returns stay out of token values
	for _, tok := range toks {
		if strings.ContainsRune(tok.String(), '\r') {
			t.Errorf("%s token %q contains a carriage return", tok.Type, tok.String())
		}
	}
	if got := toks[4].String(); got != "1.6.2" {
		t.Errorf("version = %q", got)
	}
	if got := toks[9].String(); got != "# CMS" {
		t.Errorf("comment = %q", got)
	}
}

func TestTokenizeErrs(t *testing.T) {
	for _, bad := range []string{
		"django ==\n",
		"django=1.6\n",
		"requests[security\n",
		"name @\n",
		"django==1.6.2 extra\n",
		"- \n",
	} {
		if _, err := Tokenize([]byte(bad)); err == nil {
			t.Errorf("no error for %q", bad)
		}
	}
}

func TestTokenizeKeepGoing(t *testing.T) {
	var errs []error
	toks, err := Tokenize([]byte("django=1.6\nsouth==0.8.4\n"), KeepGoing(&errs))
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	var names []string
	for _, tok := range toks {
		if tok.Type == TName {
			names = append(names, tok.String())
		}
	}
	if len(names) != 1 || names[0] != "south" {
		t.Errorf("recovery kept the wrong names: %v", names)
	}
}

func TestPosLineCol(t *testing.T) {
	d := []byte("a\nbb\nccc\n")
	doc := NewPosDoc(d)
	for _, tc := range []struct{ off, line, col int }{
		{0, 0, 0},
		{2, 1, 0},
		{3, 1, 1},
		{5, 2, 0},
		{7, 2, 2},
	} {
		l, c := doc.LineCol(tc.off)
		if l != tc.line || c != tc.col {
			t.Errorf("LineCol(%d) = %d,%d want %d,%d", tc.off, l, c, tc.line, tc.col)
		}
	}
}
