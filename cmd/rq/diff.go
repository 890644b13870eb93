package main

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/req-format/go-req/diff"
	"github.com/req-format/go-req/encode"
	"github.com/req-format/go-req/format"
)

type DiffConfig struct {
	*MainConfig
	Diff    *cli.Command
	Unified bool `cli:"name=u desc='print a line diff instead of per-project changes'"`
}

func diffRun(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	f1, err := getManifest(cfg.MainConfig, args[0])
	if err != nil {
		return err
	}
	f2, err := getManifest(cfg.MainConfig, args[1])
	if err != nil {
		return err
	}
	if cfg.Unified {
		d, changed := diff.TextDiff(f1, f2)
		fmt.Fprint(cc.Out, d)
		if changed {
			return cli.ExitCodeErr(1)
		}
		return nil
	}
	d := diff.Make(f1, f2)
	switch cfg.outFormat() {
	case format.JSONFormat:
		enc := json.NewEncoder(cc.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d.Doc()); err != nil {
			return err
		}
	case format.YAMLFormat:
		out, err := yaml.Marshal(d.Doc())
		if err != nil {
			return err
		}
		if _, err := cc.Out.Write(out); err != nil {
			return err
		}
	default:
		var colors *encode.Colors
		if cfg.useColor(cc.Out) {
			colors = encode.NewColors()
		}
		if err := d.Text(cc.Out, colors); err != nil {
			return err
		}
	}
	if !d.Empty() {
		return cli.ExitCodeErr(1)
	}
	return nil
}
