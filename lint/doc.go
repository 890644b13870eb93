// Package lint checks manifests for structural problems: lines that do
// not parse, repeated projects with conflicting pins, malformed
// versions, and unpinned requirements. User-defined rules written as
// boolean expressions extend the built-in checks.
package lint
