package token

import (
	"fmt"
)

type tokenOpts struct {
	keepGoing bool
	errs      *[]error
}

type TokenOpt func(*tokenOpts)

// KeepGoing makes tokenization record line-level errors in errs and
// continue with the next line instead of stopping at the first one.
func KeepGoing(errs *[]error) TokenOpt {
	return func(o *tokenOpts) {
		o.keepGoing = true
		o.errs = errs
	}
}

// Tokenize scans a requirements document. Every logical line produces
// the tokens of its content followed by a TNewline; blank lines produce
// a bare TNewline. Physical lines joined by a trailing backslash form
// one logical line.
func Tokenize(d []byte, opts ...TokenOpt) ([]Token, error) {
	opt := &tokenOpts{}
	for _, o := range opts {
		o(opt)
	}
	tk := &tokenizer{d: d, doc: NewPosDoc(d), opt: opt}
	if err := tk.run(); err != nil {
		return nil, err
	}
	return tk.toks, nil
}

type tokenizer struct {
	d   []byte
	i   int
	doc *PosDoc
	opt *tokenOpts

	toks []Token
}

func (tk *tokenizer) run() error {
	for tk.i < len(tk.d) {
		mark := len(tk.toks)
		if err := tk.line(); err != nil {
			if !tk.opt.keepGoing {
				return err
			}
			*tk.opt.errs = append(*tk.opt.errs, err)
			// drop the failed line's partial tokens
			tk.toks = tk.toks[:mark]
			tk.skipToEOL()
		}
	}
	return nil
}

func (tk *tokenizer) line() error {
	tk.space()
	if tk.i >= len(tk.d) {
		return nil
	}
	switch c := tk.d[tk.i]; {
	case c == '\n':
		tk.emit(TNewline, tk.i, tk.i+1)
		tk.i++
		return nil
	case c == '#':
		tk.comment()
	case c == '-':
		if err := tk.flagLine(); err != nil {
			return err
		}
	default:
		if err := tk.requirement(); err != nil {
			return err
		}
	}
	return tk.eol()
}

// eol consumes an optional trailing comment and the line terminator.
func (tk *tokenizer) eol() error {
	tk.space()
	if tk.i < len(tk.d) && tk.d[tk.i] == '#' {
		tk.comment()
		tk.space()
	}
	if tk.i >= len(tk.d) {
		return nil
	}
	if tk.d[tk.i] != '\n' {
		return UnexpectedErr(fmt.Sprintf("character %q", tk.d[tk.i]), tk.doc.Pos(tk.i))
	}
	tk.emit(TNewline, tk.i, tk.i+1)
	tk.i++
	return nil
}

func (tk *tokenizer) comment() {
	start := tk.i
	for tk.i < len(tk.d) && tk.d[tk.i] != '\n' {
		tk.i++
	}
	end := tk.i
	for end > start && (tk.d[end-1] == ' ' || tk.d[end-1] == '\t' || tk.d[end-1] == '\r') {
		end--
	}
	tk.emit(TComment, start, end)
}

func (tk *tokenizer) flagLine() error {
	start := tk.i
	for tk.i < len(tk.d) && !isSpaceOrEOL(tk.d[tk.i]) && tk.d[tk.i] != '=' {
		tk.i++
	}
	if tk.i == start+1 && tk.d[start] == '-' {
		return ExpectedErr("option name after -", tk.doc.Pos(start))
	}
	tk.emit(TFlag, start, tk.i)
	if tk.i < len(tk.d) && tk.d[tk.i] == '=' {
		tk.i++
	}
	for {
		tk.space()
		if tk.i >= len(tk.d) || tk.d[tk.i] == '\n' || tk.commentStart() {
			return nil
		}
		as := tk.i
		for tk.i < len(tk.d) && !isSpaceOrEOL(tk.d[tk.i]) {
			tk.i++
		}
		tk.emit(TArg, as, tk.i)
	}
}

func (tk *tokenizer) requirement() error {
	if err := tk.name(); err != nil {
		return err
	}
	tk.space()
	if tk.i < len(tk.d) && tk.d[tk.i] == '[' {
		if err := tk.extras(); err != nil {
			return err
		}
		tk.space()
	}
	if tk.i < len(tk.d) && tk.d[tk.i] == '@' {
		tk.emit(TAt, tk.i, tk.i+1)
		tk.i++
		tk.space()
		us := tk.i
		for tk.i < len(tk.d) && !isSpaceOrEOL(tk.d[tk.i]) {
			tk.i++
		}
		if tk.i == us {
			return ExpectedErr("URL after @", tk.doc.Pos(us))
		}
		tk.emit(TURL, us, tk.i)
		tk.space()
	} else if err := tk.specifiers(); err != nil {
		return err
	}
	tk.space()
	if tk.i < len(tk.d) && tk.d[tk.i] == ';' {
		tk.emit(TSemi, tk.i, tk.i+1)
		tk.i++
		if err := tk.marker(); err != nil {
			return err
		}
	}
	return tk.options()
}

func (tk *tokenizer) name() error {
	start := tk.i
	if tk.i >= len(tk.d) || !isAlnum(tk.d[tk.i]) {
		return ExpectedErr("package name", tk.doc.Pos(tk.i))
	}
	for tk.i < len(tk.d) && isNameChar(tk.d[tk.i]) {
		tk.i++
	}
	// a name may not end in ., _ or -
	for tk.i > start && !isAlnum(tk.d[tk.i-1]) {
		tk.i--
	}
	tk.emit(TName, start, tk.i)
	return nil
}

func (tk *tokenizer) extras() error {
	start := tk.i
	tk.i++ // consume [
	for tk.i < len(tk.d) && tk.d[tk.i] != ']' && tk.d[tk.i] != '\n' {
		tk.i++
	}
	if tk.i >= len(tk.d) || tk.d[tk.i] != ']' {
		return ExpectedErr("] closing extras", tk.doc.Pos(start))
	}
	tk.i++
	tk.emit(TExtras, start, tk.i)
	return nil
}

// specifiers scans zero or more comma-separated version constraints,
// optionally wrapped in parentheses.
func (tk *tokenizer) specifiers() error {
	tk.space()
	paren := false
	if tk.i < len(tk.d) && tk.d[tk.i] == '(' {
		paren = true
		tk.i++
		tk.space()
	}
	first := true
	for {
		tk.space()
		if tk.i >= len(tk.d) {
			break
		}
		c := tk.d[tk.i]
		if c == ',' {
			tk.emit(TComma, tk.i, tk.i+1)
			tk.i++
			continue
		}
		if !isOpStart(c) {
			if !first && !paren {
				break
			}
			if paren && c == ')' {
				break
			}
			if first {
				break
			}
			return ExpectedErr("version operator", tk.doc.Pos(tk.i))
		}
		if err := tk.opAndVersion(); err != nil {
			return err
		}
		first = false
	}
	if paren {
		tk.space()
		if tk.i >= len(tk.d) || tk.d[tk.i] != ')' {
			return ExpectedErr(") closing version constraints", tk.doc.Pos(tk.i))
		}
		tk.i++
	}
	return nil
}

func (tk *tokenizer) opAndVersion() error {
	start := tk.i
	for tk.i < len(tk.d) && isOpStart(tk.d[tk.i]) {
		tk.i++
	}
	op := string(tk.d[start:tk.i])
	switch op {
	case "==", "===", "!=", "<=", ">=", "<", ">", "~=":
	default:
		return UnexpectedErr(fmt.Sprintf("version operator %q", op), tk.doc.Pos(start))
	}
	tk.emit(TOp, start, tk.i)
	tk.space()
	vs := tk.i
	for tk.i < len(tk.d) && isVersionChar(tk.d[tk.i]) {
		tk.i++
	}
	if tk.i == vs {
		return ExpectedErr(fmt.Sprintf("version after %s", op), tk.doc.Pos(vs))
	}
	tk.emit(TVersion, vs, tk.i)
	return nil
}

func (tk *tokenizer) marker() error {
	tk.space()
	start := tk.i
	end := start
	for tk.i < len(tk.d) && tk.d[tk.i] != '\n' {
		if tk.commentStart() {
			break
		}
		if tk.d[tk.i] == '-' && tk.i+1 < len(tk.d) && tk.d[tk.i+1] == '-' &&
			(tk.i == start || isSpace(tk.d[tk.i-1])) {
			break
		}
		if !isSpace(tk.d[tk.i]) {
			end = tk.i + 1
		}
		tk.i++
	}
	if end == start {
		return ExpectedErr("environment marker after ;", tk.doc.Pos(start))
	}
	tk.emit(TMarker, start, end)
	tk.i = end
	return nil
}

// options scans trailing per-requirement options such as --hash=....
func (tk *tokenizer) options() error {
	for {
		tk.space()
		if tk.i >= len(tk.d) || tk.d[tk.i] == '\n' || tk.commentStart() {
			return nil
		}
		if tk.d[tk.i] != '-' {
			return UnexpectedErr(fmt.Sprintf("character %q", tk.d[tk.i]), tk.doc.Pos(tk.i))
		}
		start := tk.i
		for tk.i < len(tk.d) && !isSpaceOrEOL(tk.d[tk.i]) {
			tk.i++
		}
		tk.emit(TOption, start, tk.i)
	}
}

// commentStart reports whether position i begins a trailing comment: a
// '#' at line start or preceded by whitespace.
func (tk *tokenizer) commentStart() bool {
	if tk.i >= len(tk.d) || tk.d[tk.i] != '#' {
		return false
	}
	return tk.i == 0 || isSpace(tk.d[tk.i-1]) || tk.d[tk.i-1] == '\n'
}

// space consumes spaces, tabs, carriage returns, and backslash-newline
// continuations.
func (tk *tokenizer) space() {
	for tk.i < len(tk.d) {
		c := tk.d[tk.i]
		if c == ' ' || c == '\t' || c == '\r' {
			tk.i++
			continue
		}
		if c == '\\' {
			j := tk.i + 1
			if j < len(tk.d) && tk.d[j] == '\r' {
				j++
			}
			if j < len(tk.d) && tk.d[j] == '\n' {
				tk.i = j + 1
				continue
			}
		}
		return
	}
}

func (tk *tokenizer) skipToEOL() {
	for tk.i < len(tk.d) && tk.d[tk.i] != '\n' {
		tk.i++
	}
	if tk.i < len(tk.d) {
		tk.emit(TNewline, tk.i, tk.i+1)
		tk.i++
	}
}

func (tk *tokenizer) emit(t TokenType, start, end int) {
	tk.toks = append(tk.toks, Token{
		Type:  t,
		Pos:   tk.doc.Pos(start),
		Bytes: tk.d[start:end],
	})
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func isSpaceOrEOL(c byte) bool {
	return isSpace(c) || c == '\n'
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isNameChar(c byte) bool {
	return isAlnum(c) || c == '.' || c == '_' || c == '-'
}

func isOpStart(c byte) bool {
	return c == '=' || c == '!' || c == '<' || c == '>' || c == '~'
}

func isVersionChar(c byte) bool {
	return isAlnum(c) || c == '.' || c == '*' || c == '+' || c == '!' || c == '-' || c == '_'
}
