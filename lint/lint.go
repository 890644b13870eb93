package lint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/req-format/go-req/manifest"
	"github.com/req-format/go-req/parse"
	"github.com/req-format/go-req/token"
	"github.com/req-format/go-req/version"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	d, err := s.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case SeverityError:
		return []byte("error"), nil
	case SeverityWarning:
		return []byte("warning"), nil
	case SeverityInfo:
		return []byte("info"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a severity>", s)
	}
}

func (s *Severity) UnmarshalText(d []byte) error {
	v, ok := map[string]Severity{
		"error":   SeverityError,
		"warning": SeverityWarning,
		"warn":    SeverityWarning,
		"info":    SeverityInfo,
	}[string(d)]
	if !ok {
		return fmt.Errorf("bad severity %q", d)
	}
	*s = v
	return nil
}

// Built-in check codes.
const (
	CodeSyntax     = "syntax"
	CodeConflict   = "conflict"
	CodeDuplicate  = "duplicate"
	CodeUnpinned   = "unpinned"
	CodeBadVersion = "bad-version"
)

type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string
	Pos      *token.Pos
}

func (d *Diagnostic) String() string {
	loc := ""
	if d.Pos != nil {
		line, col := d.Pos.LineCol()
		loc = fmt.Sprintf("%d:%d: ", line+1, col+1)
	}
	return fmt.Sprintf("%s%s: %s (%s)", loc, d.Severity, d.Message, d.Code)
}

type Linter struct {
	cfg   *Config
	rules []*compiledRule
}

func New(cfg *Config) (*Linter, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	l := &Linter{cfg: cfg}
	for i := range cfg.Rules {
		cr, err := compileRule(&cfg.Rules[i])
		if err != nil {
			return nil, err
		}
		l.rules = append(l.rules, cr)
	}
	return l, nil
}

// Check parses d with error recovery and reports all diagnostics in
// document order by check.
func (l *Linter) Check(d []byte) ([]Diagnostic, error) {
	var parseErrs []error
	f, err := parse.Parse(d, parse.KeepGoing(&parseErrs))
	if err != nil {
		return nil, err
	}
	return l.CheckFile(f, parseErrs)
}

// CheckFile lints an already-parsed manifest. parseErrs carries the
// recovered line errors from parsing, reported under the syntax code.
func (l *Linter) CheckFile(f *manifest.File, parseErrs []error) ([]Diagnostic, error) {
	var ds []Diagnostic
	for _, err := range parseErrs {
		ds = append(ds, Diagnostic{
			Code:     CodeSyntax,
			Severity: SeverityError,
			Message:  errMessage(err),
			Pos:      errPos(err),
		})
	}
	ds = append(ds, checkVersions(f)...)
	ds = append(ds, checkDuplicates(f)...)
	ds = append(ds, checkUnpinned(f)...)
	rds, err := l.runRules(f)
	if err != nil {
		return nil, err
	}
	ds = append(ds, rds...)
	return l.filter(ds), nil
}

// Errors reports whether any diagnostic is an error.
func Errors(ds []Diagnostic) bool {
	for i := range ds {
		if ds[i].Severity == SeverityError {
			return true
		}
	}
	return false
}

func (l *Linter) filter(ds []Diagnostic) []Diagnostic {
	disabled := map[string]bool{}
	for _, code := range l.cfg.Disable {
		disabled[code] = true
	}
	var res []Diagnostic
	for _, d := range ds {
		if disabled[d.Code] {
			continue
		}
		if sev, ok := l.cfg.Severity[d.Code]; ok {
			d.Severity = sev
		}
		res = append(res, d)
	}
	return res
}

func checkVersions(f *manifest.File) []Diagnostic {
	var ds []Diagnostic
	for _, r := range f.Requirements() {
		for _, spec := range r.Specifiers {
			if spec.Op == "===" {
				continue // arbitrary equality takes any string
			}
			v := spec.Version
			if strings.HasSuffix(v, ".*") {
				if spec.Op != "==" && spec.Op != "!=" {
					ds = append(ds, Diagnostic{
						Code:     CodeBadVersion,
						Severity: SeverityError,
						Message:  fmt.Sprintf("%s: %s does not take a wildcard version", r.Name, spec.Op),
						Pos:      r.Pos,
					})
					continue
				}
				v = strings.TrimSuffix(v, ".*")
			}
			if _, err := version.Parse(v); err != nil {
				ds = append(ds, Diagnostic{
					Code:     CodeBadVersion,
					Severity: SeverityError,
					Message:  fmt.Sprintf("%s: %v", r.Name, err),
					Pos:      r.Pos,
				})
			}
		}
	}
	return ds
}

// checkDuplicates reports repeated project names: an error when the
// repeated entries pin conflicting versions, informational otherwise.
func checkDuplicates(f *manifest.File) []Diagnostic {
	var ds []Diagnostic
	seen := map[string]*manifest.Requirement{}
	for _, r := range f.Requirements() {
		key := r.Canonical()
		prev, ok := seen[key]
		if !ok {
			seen[key] = r
			continue
		}
		conflict, err := version.Conflicts(prev.Specifiers, r.Specifiers)
		if err != nil {
			// malformed versions are reported by checkVersions
			continue
		}
		if conflict {
			ds = append(ds, Diagnostic{
				Code:     CodeConflict,
				Severity: SeverityError,
				Message: fmt.Sprintf("%s pinned as %s conflicts with earlier %s",
					r.Name, r.Specifiers, prev.Specifiers),
				Pos: r.Pos,
			})
			continue
		}
		ds = append(ds, Diagnostic{
			Code:     CodeDuplicate,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("%s appears more than once", r.Name),
			Pos:      r.Pos,
		})
	}
	return ds
}

func checkUnpinned(f *manifest.File) []Diagnostic {
	var ds []Diagnostic
	for _, r := range f.Requirements() {
		if r.URL != "" {
			continue
		}
		if _, ok := r.Pinned(); ok {
			continue
		}
		what := "has no version constraint"
		if len(r.Specifiers) != 0 {
			what = fmt.Sprintf("is constrained (%s) but not pinned", r.Specifiers)
		}
		ds = append(ds, Diagnostic{
			Code:     CodeUnpinned,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%s %s", r.Name, what),
			Pos:      r.Pos,
		})
	}
	return ds
}

func errMessage(err error) string {
	var te *token.TokenizeErr
	if errors.As(err, &te) {
		return te.Err.Error()
	}
	return err.Error()
}

func errPos(err error) *token.Pos {
	var te *token.TokenizeErr
	if errors.As(err, &te) {
		p := te.Pos
		return &p
	}
	return nil
}
