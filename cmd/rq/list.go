package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

type ListConfig struct {
	*MainConfig
	List *cli.Command
}

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range inputArgs(args) {
		f, err := getManifest(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		for _, r := range f.Requirements() {
			pin, ok := r.Pinned()
			if !ok {
				pin = "-"
			}
			fmt.Fprintf(cc.Out, "%s\t%s\n", r.Canonical(), pin)
		}
	}
	return nil
}
