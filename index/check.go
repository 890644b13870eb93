package index

import (
	"context"

	"github.com/req-format/go-req/manifest"
	"github.com/req-format/go-req/version"
)

// Resolution reports whether one requirement resolves against the
// index.
type Resolution struct {
	Req *manifest.Requirement
	// Err is the lookup failure, if any; other fields are then unset.
	Err error
	// Found reports whether the pinned version is published.
	// Unpinned requirements report Found when any release satisfies
	// the constraints.
	Found  bool
	Yanked bool
	// Latest is the index's current release.
	Latest string
	// LatestMatching is the newest release satisfying the
	// requirement's constraints.
	LatestMatching string
}

// Check resolves every requirement of the manifest against the index.
// Lookup failures are recorded per requirement; the batch always
// completes. Requirements installed from a URL are skipped.
func (c *Client) Check(ctx context.Context, f *manifest.File) []Resolution {
	var res []Resolution
	for _, r := range f.Requirements() {
		if r.URL != "" {
			continue
		}
		res = append(res, c.resolve(ctx, r))
	}
	return res
}

func (c *Client) resolve(ctx context.Context, r *manifest.Requirement) Resolution {
	res := Resolution{Req: r}
	p, err := c.LookupProject(ctx, r.Name)
	if err != nil {
		res.Err = err
		return res
	}
	res.Latest = p.Latest

	pin, pinned := r.Pinned()
	if pinned {
		res.Found, res.Yanked = findRelease(p, pin)
	}
	res.LatestMatching = latestMatching(p, r.Specifiers)
	if !pinned {
		res.Found = res.LatestMatching != ""
	}
	return res
}

// findRelease locates pin among the published releases, comparing
// canonically so 1.6.0 and 1.6 match.
func findRelease(p *Project, pin string) (found, yanked bool) {
	if found, yanked = p.HasRelease(pin); found {
		return found, yanked
	}
	pv, err := version.Parse(pin)
	if err != nil {
		return false, false
	}
	for ver := range p.Releases {
		rv, err := version.Parse(ver)
		if err != nil {
			continue
		}
		if version.Compare(pv, rv) == 0 {
			return p.HasRelease(ver)
		}
	}
	return false, false
}

func latestMatching(p *Project, specs version.Specifiers) string {
	allowPre := specs.Prerelease()
	var best *version.Version
	var bestText string
	for ver := range p.Releases {
		rv, err := version.Parse(ver)
		if err != nil {
			continue
		}
		if rv.IsPrerelease() && !allowPre {
			continue
		}
		ok, err := specs.Match(rv)
		if err != nil || !ok {
			continue
		}
		if best == nil || version.Compare(rv, best) > 0 {
			best, bestText = rv, ver
		}
	}
	return bestText
}
