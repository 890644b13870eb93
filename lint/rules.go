package lint

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/req-format/go-req/manifest"
)

// RuleEnv is the expression environment a rule's when clause is
// evaluated against, one requirement at a time.
type RuleEnv struct {
	Name       string   `expr:"Name"`
	Canonical  string   `expr:"Canonical"`
	Pinned     bool     `expr:"Pinned"`
	Version    string   `expr:"Version"`
	Constraint string   `expr:"Constraint"`
	Extras     []string `expr:"Extras"`
	Marker     string   `expr:"Marker"`
	URL        string   `expr:"URL"`
	HasHash    bool     `expr:"HasHash"`
}

type compiledRule struct {
	cfg  *RuleConfig
	prog *vm.Program
}

func compileRule(cfg *RuleConfig) (*compiledRule, error) {
	prog, err := expr.Compile(cfg.When, expr.Env(RuleEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", cfg.ID, err)
	}
	return &compiledRule{cfg: cfg, prog: prog}, nil
}

func (l *Linter) runRules(f *manifest.File) ([]Diagnostic, error) {
	if len(l.rules) == 0 {
		return nil, nil
	}
	var ds []Diagnostic
	for _, r := range f.Requirements() {
		env := ruleEnv(r)
		for _, cr := range l.rules {
			out, err := expr.Run(cr.prog, env)
			if err != nil {
				return nil, fmt.Errorf("rule %q on %s: %w", cr.cfg.ID, r.Name, err)
			}
			if !out.(bool) {
				continue
			}
			msg := cr.cfg.Message
			if msg == "" {
				msg = fmt.Sprintf("%s matches rule %s", r.Name, cr.cfg.ID)
			} else {
				msg = fmt.Sprintf("%s: %s", r.Name, msg)
			}
			ds = append(ds, Diagnostic{
				Code:     cr.cfg.ID,
				Severity: cr.cfg.Severity,
				Message:  msg,
				Pos:      r.Pos,
			})
		}
	}
	return ds, nil
}

func ruleEnv(r *manifest.Requirement) RuleEnv {
	pin, pinned := r.Pinned()
	hasHash := false
	for _, opt := range r.Options {
		if len(opt) > 7 && opt[:7] == "--hash=" {
			hasHash = true
			break
		}
	}
	return RuleEnv{
		Name:       r.Name,
		Canonical:  r.Canonical(),
		Pinned:     pinned,
		Version:    pin,
		Constraint: r.Specifiers.String(),
		Extras:     r.Extras,
		Marker:     r.Marker,
		URL:        r.URL,
		HasHash:    hasHash,
	}
}
