package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/scott-cotton/cli"

	"github.com/req-format/go-req/lint"
)

type CheckConfig struct {
	*MainConfig
	Check      *cli.Command
	ConfigFile string `cli:"name=config desc='lint config file (default .reqlint.yaml if present)'"`
}

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	lintCfg, err := loadLintConfig(cfg.ConfigFile)
	if err != nil {
		return err
	}
	linter, err := lint.New(lintCfg)
	if err != nil {
		return err
	}
	failed := false
	for _, arg := range inputArgs(args) {
		d, err := readArg(arg)
		if err != nil {
			return err
		}
		ds, err := linter.Check(d)
		if err != nil {
			return err
		}
		for i := range ds {
			fmt.Fprintf(cc.Out, "%s:%s\n", arg, &ds[i])
		}
		if lint.Errors(ds) {
			failed = true
		}
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func loadLintConfig(path string) (*lint.Config, error) {
	if path != "" {
		return lint.LoadConfig(path)
	}
	cfg, err := lint.LoadConfig(lint.ConfigFile)
	if errors.Is(err, fs.ErrNotExist) {
		return &lint.Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	theLog.Info("using lint config", "file", lint.ConfigFile)
	return cfg, nil
}
