package version

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadSpecifier = errors.New("bad specifier")

// Specifier is a single version clause such as ==1.6.2 or <1.7.
type Specifier struct {
	Op      string
	Version string
}

func (s Specifier) String() string {
	return s.Op + s.Version
}

// Exact reports whether the clause pins a single version (== without a
// wildcard, or ===).
func (s Specifier) Exact() bool {
	if s.Op == "===" {
		return true
	}
	return s.Op == "==" && !strings.HasSuffix(s.Version, ".*")
}

func (s Specifier) wildcard() bool {
	return strings.HasSuffix(s.Version, ".*")
}

// Match reports whether v satisfies the clause.
func (s Specifier) Match(v *Version) (bool, error) {
	if s.Op == "===" {
		return strings.EqualFold(strings.TrimSpace(s.Version), strings.TrimSpace(v.Original())), nil
	}
	if s.wildcard() {
		if s.Op != "==" && s.Op != "!=" {
			return false, fmt.Errorf("%w: %s does not take a .* version", ErrBadSpecifier, s.Op)
		}
		base, err := Parse(strings.TrimSuffix(s.Version, ".*"))
		if err != nil {
			return false, err
		}
		m := prefixMatch(v, base)
		if s.Op == "!=" {
			m = !m
		}
		return m, nil
	}
	sv, err := Parse(s.Version)
	if err != nil {
		return false, err
	}
	switch s.Op {
	case "==":
		return eqMatch(v, sv), nil
	case "!=":
		return !eqMatch(v, sv), nil
	case "<=":
		return Compare(stripLocal(v), sv) <= 0, nil
	case ">=":
		return Compare(stripLocal(v), sv) >= 0, nil
	case "<":
		// an exclusive bound does not pull in pre-releases of the
		// boundary itself
		if !sv.IsPrerelease() && v.IsPrerelease() && v.BaseEqual(sv) {
			return false, nil
		}
		return Compare(stripLocal(v), sv) < 0, nil
	case ">":
		// nor post-releases of the boundary
		if !sv.IsPostrelease() && v.IsPostrelease() && v.BaseEqual(sv) {
			return false, nil
		}
		if len(v.Local) != 0 && v.BaseEqual(sv) {
			return false, nil
		}
		return Compare(stripLocal(v), sv) > 0, nil
	case "~=":
		if len(sv.Release) < 2 {
			return false, fmt.Errorf("%w: ~= requires at least two release segments, got %q", ErrBadSpecifier, s.Version)
		}
		if Compare(stripLocal(v), sv) < 0 {
			return false, nil
		}
		trunc := &Version{Epoch: sv.Epoch, Release: sv.Release[:len(sv.Release)-1]}
		return prefixMatch(v, trunc), nil
	default:
		return false, fmt.Errorf("%w: unknown operator %q", ErrBadSpecifier, s.Op)
	}
}

// eqMatch implements ==: local version tags on the candidate are
// ignored unless the clause itself carries one.
func eqMatch(v, sv *Version) bool {
	if len(sv.Local) == 0 {
		v = stripLocal(v)
	}
	return Compare(v, sv) == 0
}

// prefixMatch reports whether v's epoch and leading release segments
// equal base's.
func prefixMatch(v, base *Version) bool {
	if v.Epoch != base.Epoch {
		return false
	}
	rel := v.Release
	if len(rel) < len(base.Release) {
		padded := make([]int, len(base.Release))
		copy(padded, rel)
		rel = padded
	}
	for i, r := range base.Release {
		if rel[i] != r {
			return false
		}
	}
	return true
}

func stripLocal(v *Version) *Version {
	if len(v.Local) == 0 {
		return v
	}
	c := *v
	c.Local = nil
	return &c
}

// Specifiers is the comma-joined AND of clauses on one requirement.
type Specifiers []Specifier

func ParseSpecifiers(s string) (Specifiers, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var res Specifiers
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		i := 0
		for i < len(part) && strings.ContainsRune("=!<>~", rune(part[i])) {
			i++
		}
		op, ver := part[:i], strings.TrimSpace(part[i:])
		switch op {
		case "==", "===", "!=", "<=", ">=", "<", ">", "~=":
		default:
			return nil, fmt.Errorf("%w: %q", ErrBadSpecifier, part)
		}
		if ver == "" {
			return nil, fmt.Errorf("%w: missing version in %q", ErrBadSpecifier, part)
		}
		res = append(res, Specifier{Op: op, Version: ver})
	}
	return res, nil
}

func (ss Specifiers) String() string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

// Match reports whether v satisfies every clause.
func (ss Specifiers) Match(v *Version) (bool, error) {
	for _, s := range ss {
		ok, err := s.Match(v)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Pin returns the pinned version text if the set contains an exact
// clause.
func (ss Specifiers) Pin() (string, bool) {
	for _, s := range ss {
		if s.Exact() {
			return s.Version, true
		}
	}
	return "", false
}

// Prerelease reports whether any clause mentions a pre-release,
// signalling that pre-release candidates are acceptable.
func (ss Specifiers) Prerelease() bool {
	for _, s := range ss {
		v, err := Parse(strings.TrimSuffix(s.Version, ".*"))
		if err != nil {
			continue
		}
		if v.IsPrerelease() {
			return true
		}
	}
	return false
}

// Conflicts reports whether two specifier sets cannot be satisfied by
// one version. Only decidable clause pairs are consulted: two exact
// pins conflict when their versions differ, and an exact pin conflicts
// with any clause it fails to match.
func Conflicts(a, b Specifiers) (bool, error) {
	for _, pinned := range []struct{ pins, other Specifiers }{{a, b}, {b, a}} {
		pin, ok := pinned.pins.Pin()
		if !ok {
			continue
		}
		pv, err := Parse(pin)
		if err != nil {
			return false, err
		}
		ok, err = pinned.other.Match(pv)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
	}
	return false, nil
}
