package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/req-format/go-req/manifest"
)

const DefaultBaseURL = "https://pypi.org/pypi"

var ErrNotFound = errors.New("project not found")

// Client queries a PyPI-compatible JSON API. Lookups are rate limited
// and cached for the lifetime of the client.
type Client struct {
	base    string
	hc      *http.Client
	limiter *rate.Limiter

	mu    sync.Mutex
	cache map[string]*Project
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.base = u }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithQPS caps outgoing index requests per second.
func WithQPS(qps float64) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(qps), 1) }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		base:    DefaultBaseURL,
		hc:      &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(10), 2),
		cache:   map[string]*Project{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Project holds the index's view of one project.
type Project struct {
	Name     string
	Latest   string
	Releases map[string][]ReleaseFile
}

type ReleaseFile struct {
	Filename string
	Yanked   bool
}

// HasRelease reports whether the exact version string (canonically
// compared) is published, and whether every file of it is yanked.
func (p *Project) HasRelease(version string) (found, yanked bool) {
	files, ok := p.Releases[version]
	if !ok {
		return false, false
	}
	if len(files) == 0 {
		return true, false
	}
	yanked = true
	for _, f := range files {
		if !f.Yanked {
			yanked = false
			break
		}
	}
	return true, yanked
}

type projectJSON struct {
	Info struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"info"`
	Releases map[string][]struct {
		Filename string `json:"filename"`
		Yanked   bool   `json:"yanked"`
	} `json:"releases"`
}

// LookupProject fetches a project's release listing, consulting the
// cache first.
func (c *Client) LookupProject(ctx context.Context, name string) (*Project, error) {
	key := manifest.Canonical(name)
	c.mu.Lock()
	if p, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/%s/json", c.base, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	default:
		return nil, fmt.Errorf("index returned %s for %s", resp.Status, key)
	}
	var pj projectJSON
	if err := json.NewDecoder(resp.Body).Decode(&pj); err != nil {
		return nil, fmt.Errorf("bad index response for %s: %w", key, err)
	}
	p := &Project{
		Name:     pj.Info.Name,
		Latest:   pj.Info.Version,
		Releases: map[string][]ReleaseFile{},
	}
	for ver, files := range pj.Releases {
		rfs := make([]ReleaseFile, len(files))
		for i, f := range files {
			rfs[i] = ReleaseFile{Filename: f.Filename, Yanked: f.Yanked}
		}
		p.Releases[ver] = rfs
	}
	c.mu.Lock()
	c.cache[key] = p
	c.mu.Unlock()
	return p, nil
}
