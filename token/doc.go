// Package token tokenizes pip-style requirements documents. The scanner
// is line oriented: each logical line is a blank, a comment, an
// installer flag (-r, --index-url, ...), or a requirement
// (name[extras] constraints ; marker --options), and backslash
// continuations join physical lines. Tokens carry byte positions that
// resolve to line/column pairs through PosDoc.
package token
