package token

import (
	"fmt"
)

type TokenType int

const (
	TComment TokenType = iota
	TName
	TExtras
	TOp
	TVersion
	TComma
	TSemi
	TMarker
	TAt
	TURL
	TFlag
	TArg
	TOption
	TNewline
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TComment: "TComment",
		TName:    "TName",
		TExtras:  "TExtras",
		TOp:      "TOp",
		TVersion: "TVersion",
		TComma:   "TComma",
		TSemi:    "TSemi",
		TMarker:  "TMarker",
		TAt:      "TAt",
		TURL:     "TURL",
		TFlag:    "TFlag",
		TArg:     "TArg",
		TOption:  "TOption",
		TNewline: "TNewline",
	}[t]
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

func (t *Token) String() string {
	return string(t.Bytes)
}

type TokenizeErr struct {
	Err error
	Pos Pos
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func NewTokenizeErr(e error, p *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: *p}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func ExpectedErr(what string, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("expected %s", what), p)
}

func UnexpectedErr(what string, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("unexpected %s", what), p)
}
