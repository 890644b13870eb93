// Package version implements PEP 440 version identifiers and version
// specifiers: parsing, normalization, total ordering, and clause
// matching, including wildcard (== 1.6.*) and compatible release (~=)
// semantics.
package version
