package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/req-format/go-req/manifest"
)

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a project name", cli.ErrUsage)
	}
	name := args[0]
	found := false
	for _, arg := range inputArgs(args[1:]) {
		f, err := getManifest(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		for _, r := range f.Requirements() {
			if r.Canonical() != manifest.Canonical(name) {
				continue
			}
			found = true
			fmt.Fprintln(cc.Out, r)
		}
	}
	if !found {
		return cli.ExitCodeErr(1)
	}
	return nil
}
