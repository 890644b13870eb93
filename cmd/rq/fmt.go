package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/req-format/go-req/encode"
	"github.com/req-format/go-req/format"
)

type FmtConfig struct {
	*MainConfig
	Fmt   *cli.Command
	Write bool `cli:"name=w desc='write result back to the input file'"`
	Canon bool `cli:"name=canon desc='rewrite project names to canonical form'"`
}

func fmtRun(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: -w requires file arguments", cli.ErrUsage)
	}
	for _, arg := range inputArgs(args) {
		f, err := getManifest(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		opts := []encode.EncodeOption{
			encode.EncodeFormat(format.TextFormat),
			encode.EncodeSort(cfg.Sort),
			encode.EncodeComments(!cfg.Strip),
			encode.EncodeCanonical(cfg.Canon),
		}
		if !cfg.Write {
			if err := encode.Encode(f, cc.Out, opts...); err != nil {
				return err
			}
			continue
		}
		var buf bytes.Buffer
		if err := encode.Encode(f, &buf, opts...); err != nil {
			return err
		}
		if err := os.WriteFile(arg, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("error rewriting %s: %w", arg, err)
		}
	}
	return nil
}
