package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/req-format/go-req/diff"
	"github.com/req-format/go-req/encode"
)

type PatchConfig struct {
	*MainConfig
	Patch     *cli.Command
	PatchFile string `cli:"name=p desc='JSON patch file (RFC 6902)'"`
}

func patchRun(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.PatchFile == "" {
		return fmt.Errorf("%w: patch requires -p", cli.ErrUsage)
	}
	pd, err := os.ReadFile(cfg.PatchFile)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: patch takes at most one input, got %v", cli.ErrUsage, args)
	}
	f, err := getManifest(cfg.MainConfig, inputArgs(args)[0])
	if err != nil {
		return err
	}
	patched, err := diff.Patch(f, pd)
	if err != nil {
		return err
	}
	return encode.Encode(patched, cc.Out, cfg.encOpts(cc.Out)...)
}
