package main

import (
	"github.com/scott-cotton/cli"

	"github.com/req-format/go-req"
	"github.com/req-format/go-req/encode"
	"github.com/req-format/go-req/format"
	"github.com/req-format/go-req/manifest"
)

type ViewConfig struct {
	*MainConfig
	View    *cli.Command
	Flatten bool `cli:"name=flatten desc='inline -r/-c includes before rendering'"`
}

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range inputArgs(args) {
		f, err := cfg.load(arg)
		if err != nil {
			return err
		}
		if err := encode.Encode(f, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}

func (cfg *ViewConfig) load(arg string) (*manifest.File, error) {
	if cfg.Flatten && arg != "-" && cfg.inFormat() == format.TextFormat {
		return req.Flatten(arg)
	}
	return getManifest(cfg.MainConfig, arg)
}
