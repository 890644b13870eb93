package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/req-format/go-req/index"
)

const defaultIndexURL = index.DefaultBaseURL

type AuditConfig struct {
	*MainConfig
	Audit *cli.Command
	Index string `cli:"name=index desc='package index JSON API base URL'"`
	QPS   int    `cli:"name=qps desc='max index requests per second'"`
}

func audit(cfg *AuditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Audit.Parse(cc, args)
	if err != nil {
		cfg.Audit.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	client := index.NewClient(
		index.WithBaseURL(cfg.Index),
		index.WithQPS(float64(cfg.QPS)),
	)
	ctx := context.Background()
	failed := false
	for _, arg := range inputArgs(args) {
		f, err := getManifest(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		for _, res := range client.Check(ctx, f) {
			line, bad := auditLine(&res)
			if bad {
				failed = true
			}
			fmt.Fprintf(cc.Out, "%s: %s\n", arg, line)
		}
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func auditLine(res *index.Resolution) (string, bool) {
	name := res.Req.Canonical()
	if res.Err != nil {
		return fmt.Sprintf("%s: %v", name, res.Err), true
	}
	pin, pinned := res.Req.Pinned()
	switch {
	case pinned && !res.Found:
		return fmt.Sprintf("%s: pinned %s not on index (latest %s)", name, pin, res.Latest), true
	case pinned && res.Yanked:
		return fmt.Sprintf("%s: pinned %s is yanked (latest %s)", name, pin, res.Latest), true
	case !pinned && !res.Found:
		return fmt.Sprintf("%s: no release satisfies %s (latest %s)", name, res.Req.Specifiers, res.Latest), true
	case pinned:
		return fmt.Sprintf("%s: ok %s (latest matching %s, latest %s)", name, pin, res.LatestMatching, res.Latest), false
	default:
		return fmt.Sprintf("%s: ok (latest matching %s, latest %s)", name, res.LatestMatching, res.Latest), false
	}
}
