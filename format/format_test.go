package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"r":         TextFormat,
		"text":      TextFormat,
		"j":         JSONFormat,
		"json":      JSONFormat,
		"yaml":      YAMLFormat,
		"toml":      TOMLFormat,
		"pyproject": TOMLFormat,
	} {
		got, err := ParseFormat(in)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("ParseFormat(xml) err = %v", err)
	}
}

func TestFormatText(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte("yaml")); err != nil {
		t.Fatal(err)
	}
	if !f.IsYAML() || f.String() != "yaml" || f.Suffix() != ".yaml" {
		t.Errorf("f = %s", f)
	}
}
