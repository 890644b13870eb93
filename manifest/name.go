package manifest

import "strings"

// Canonical normalizes a project name the way package indexes do:
// lowercase, with every run of dots, dashes and underscores collapsed
// to a single dash. Django, django and DJANGO identify one project, as
// do zope.interface and zope-interface.
func Canonical(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	sep := false
	for _, c := range strings.ToLower(name) {
		switch c {
		case '-', '_', '.':
			sep = true
		default:
			if sep && b.Len() > 0 {
				b.WriteByte('-')
			}
			sep = false
			b.WriteRune(c)
		}
	}
	return b.String()
}
