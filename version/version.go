package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadVersion = errors.New("bad version")

// Version is a parsed PEP 440 version identifier:
//
//	[N!]N(.N)*[{a|b|rc}N][.postN][.devN][+local]
//
// Parsing normalizes the spellings the scheme treats as equivalent
// (case, alpha/beta/c/pre/preview/rev separators, leading v).
type Version struct {
	Epoch   int
	Release []int
	Pre     *Pre
	Post    *int
	Dev     *int
	Local   []LocalSeg

	original string
}

type Pre struct {
	Phase string // "a", "b" or "rc"
	N     int
}

type LocalSeg struct {
	S   string
	N   int
	Num bool
}

// Original returns the version text as written.
func (v *Version) Original() string { return v.original }

func Parse(s string) (*Version, error) {
	v := &Version{original: s}
	p := &vparser{s: strings.ToLower(strings.TrimSpace(s))}
	p.s = strings.TrimPrefix(p.s, "v")
	if err := p.run(v); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrBadVersion, s, err)
	}
	return v, nil
}

// MustParse is for tests and compiled-in constants.
func MustParse(s string) *Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

type vparser struct {
	s string
	i int
}

func (p *vparser) run(v *Version) error {
	n, ok := p.number()
	if !ok {
		return errors.New("expected release number")
	}
	if p.eat('!') {
		v.Epoch = n
		n, ok = p.number()
		if !ok {
			return errors.New("expected release number after epoch")
		}
	}
	v.Release = append(v.Release, n)
	for p.eat('.') {
		n, ok = p.number()
		if !ok {
			p.i-- // the dot introduced a pre/post/dev segment
			break
		}
		v.Release = append(v.Release, n)
	}
	if phase, ok := p.prePhase(); ok {
		n, _ := p.number()
		v.Pre = &Pre{Phase: phase, N: n}
	}
	if ok := p.postSep(); ok {
		n, _ := p.number()
		v.Post = &n
	}
	if p.word("dev") {
		n, _ := p.number()
		v.Dev = &n
	}
	if p.eat('+') {
		if err := p.local(v); err != nil {
			return err
		}
	}
	if p.i != len(p.s) {
		return fmt.Errorf("trailing %q", p.s[p.i:])
	}
	return nil
}

func (p *vparser) number() (int, bool) {
	start := p.i
	for p.i < len(p.s) && p.s[p.i] >= '0' && p.s[p.i] <= '9' {
		p.i++
	}
	if p.i == start {
		return 0, false
	}
	n, err := strconv.Atoi(p.s[start:p.i])
	if err != nil {
		// overflow on absurd numbers
		p.i = start
		return 0, false
	}
	return n, true
}

func (p *vparser) eat(c byte) bool {
	if p.i < len(p.s) && p.s[p.i] == c {
		p.i++
		return true
	}
	return false
}

func (p *vparser) sep() {
	if p.i < len(p.s) {
		switch p.s[p.i] {
		case '.', '-', '_':
			p.i++
		}
	}
}

func (p *vparser) word(w string) bool {
	save := p.i
	p.sep()
	if strings.HasPrefix(p.s[p.i:], w) {
		p.i += len(w)
		p.sep()
		return true
	}
	p.i = save
	return false
}

func (p *vparser) prePhase() (string, bool) {
	for _, w := range []struct{ spell, norm string }{
		{"alpha", "a"}, {"beta", "b"}, {"preview", "rc"}, {"pre", "rc"},
		{"rc", "rc"}, {"a", "a"}, {"b", "b"}, {"c", "rc"},
	} {
		if p.word(w.spell) {
			return w.norm, true
		}
	}
	return "", false
}

func (p *vparser) postSep() bool {
	for _, w := range []string{"post", "rev", "r"} {
		if p.word(w) {
			return true
		}
	}
	// implicit post release: 1.0-1
	if p.i < len(p.s) && p.s[p.i] == '-' {
		if p.i+1 < len(p.s) && p.s[p.i+1] >= '0' && p.s[p.i+1] <= '9' {
			p.i++
			return true
		}
	}
	return false
}

func (p *vparser) local(v *Version) error {
	start := p.i
	seg := start
	flush := func(end int) error {
		if end == seg {
			return errors.New("empty local version segment")
		}
		s := p.s[seg:end]
		if n, err := strconv.Atoi(s); err == nil {
			v.Local = append(v.Local, LocalSeg{N: n, Num: true})
		} else {
			v.Local = append(v.Local, LocalSeg{S: s})
		}
		return nil
	}
	for ; p.i < len(p.s); p.i++ {
		switch c := p.s[p.i]; {
		case c == '.' || c == '-' || c == '_':
			if err := flush(p.i); err != nil {
				return err
			}
			seg = p.i + 1
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
		default:
			return fmt.Errorf("bad local version character %q", c)
		}
	}
	return flush(p.i)
}

// String renders the normalized form.
func (v *Version) String() string {
	var b strings.Builder
	if v.Epoch != 0 {
		fmt.Fprintf(&b, "%d!", v.Epoch)
	}
	for i, r := range v.Release {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(r))
	}
	if v.Pre != nil {
		fmt.Fprintf(&b, "%s%d", v.Pre.Phase, v.Pre.N)
	}
	if v.Post != nil {
		fmt.Fprintf(&b, ".post%d", *v.Post)
	}
	if v.Dev != nil {
		fmt.Fprintf(&b, ".dev%d", *v.Dev)
	}
	if len(v.Local) != 0 {
		b.WriteByte('+')
		for i, seg := range v.Local {
			if i > 0 {
				b.WriteByte('.')
			}
			if seg.Num {
				b.WriteString(strconv.Itoa(seg.N))
			} else {
				b.WriteString(seg.S)
			}
		}
	}
	return b.String()
}

func (v *Version) IsPrerelease() bool { return v.Pre != nil || v.Dev != nil }
func (v *Version) IsPostrelease() bool { return v.Post != nil }

// BaseEqual reports whether two versions share epoch and release,
// ignoring pre/post/dev/local parts.
func (v *Version) BaseEqual(o *Version) bool {
	if v.Epoch != o.Epoch {
		return false
	}
	return cmpRelease(v.Release, o.Release) == 0
}

// Compare orders versions per PEP 440: epoch, then release (shorter
// releases padded with zeros), then dev < pre < final < post, with a
// trailing dev segment sorting before its anchor and local versions
// after their public version.
func Compare(a, b *Version) int {
	if a.Epoch != b.Epoch {
		return cmpInt(a.Epoch, b.Epoch)
	}
	if c := cmpRelease(a.Release, b.Release); c != 0 {
		return c
	}
	if c := cmpPre(a, b); c != 0 {
		return c
	}
	if c := cmpOpt(a.Post, b.Post, -1); c != 0 {
		return c
	}
	if c := cmpOpt(a.Dev, b.Dev, 1); c != 0 {
		return c
	}
	return cmpLocal(a.Local, b.Local)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpRelease(a, b []int) int {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if c := cmpInt(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

// cmpPre compares pre-release segments. A version with neither pre,
// post nor dev is final and sorts after any pre-release; a dev-only
// version sorts before pre-releases.
func cmpPre(a, b *Version) int {
	ak, bk := preKey(a), preKey(b)
	if c := cmpInt(ak, bk); c != 0 {
		return c
	}
	if ak != 0 { // only pre segments compare further
		return 0
	}
	if c := strings.Compare(a.Pre.Phase, b.Pre.Phase); c != 0 {
		return c
	}
	return cmpInt(a.Pre.N, b.Pre.N)
}

func preKey(v *Version) int {
	switch {
	case v.Pre != nil:
		return 0
	case v.Post == nil && v.Dev != nil:
		return -1 // 1.0.dev1 < 1.0a1
	default:
		return 1 // final or post
	}
}

// cmpOpt compares optional numeric segments where an absent segment
// sorts as missing (+1) or as negative infinity (-1).
func cmpOpt(a, b *int, missing int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return missing
	case b == nil:
		return -missing
	}
	return cmpInt(*a, *b)
}

func cmpLocal(a, b []LocalSeg) int {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return -1
	case len(b) == 0:
		return 1
	}
	for i := 0; i < min(len(a), len(b)); i++ {
		as, bs := a[i], b[i]
		switch {
		case as.Num && bs.Num:
			if c := cmpInt(as.N, bs.N); c != 0 {
				return c
			}
		case as.Num:
			return 1 // numeric segments sort after alphanumeric ones
		case bs.Num:
			return -1
		default:
			if c := strings.Compare(as.S, bs.S); c != 0 {
				return c
			}
		}
	}
	return cmpInt(len(a), len(b))
}
