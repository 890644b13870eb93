package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/req-format/go-req/format"
	"github.com/req-format/go-req/manifest"
	"github.com/req-format/go-req/parse"
	"github.com/req-format/go-req/pyproject"
)

func rqMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if count(cfg.R, cfg.J, cfg.Y) > 1 {
		return fmt.Errorf("%w: must specify at most one of -r[eq] -j[son] -y[aml]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}

func readArg(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(arg)
}

// getManifest reads and decodes one input argument per the configured
// input format.
func getManifest(cfg *MainConfig, arg string) (*manifest.File, error) {
	d, err := readArg(arg)
	if err != nil {
		return nil, err
	}
	switch cfg.inFormat() {
	case format.TextFormat:
		f, err := parse.Parse(d)
		if err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", arg, err)
		}
		return f, nil
	case format.TOMLFormat:
		f, err := pyproject.Parse(d)
		if err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", arg, err)
		}
		return f, nil
	case format.JSONFormat:
		var doc manifest.Doc
		if err := json.Unmarshal(d, &doc); err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", arg, err)
		}
		return manifest.FromDoc(&doc)
	case format.YAMLFormat:
		var doc manifest.Doc
		if err := yaml.Unmarshal(d, &doc); err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", arg, err)
		}
		return manifest.FromDoc(&doc)
	default:
		return nil, fmt.Errorf("%w: cannot read %s input", format.ErrBadFormat, cfg.inFormat())
	}
}

func inputArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
