// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/creachadair/srl"
	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"
)

// options are the settings shared by all subcommands. They may be read from
// a HuJSON file, for example:
//
//	{
//	  // Offsets relative to the start of the enclosing record.
//	  "offset": 512,
//	  "maxDepth": 64,
//	}
//
// Flags given explicitly on the command line take precedence over the file.
type options struct {
	Offset   int `json:"offset"`
	MaxDepth int `json:"maxDepth"`

	configPath string
}

// resolve loads the config file, if one is set, and applies it to any
// settings not given explicitly as flags.
func (o *options) resolve(cmd *cobra.Command) error {
	if o.configPath == "" {
		return nil
	}
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	fs := cmd.Flags()
	if !fs.Changed("offset") {
		o.Offset = cfg.Offset
	}
	if !fs.Changed("max-depth") && cfg.MaxDepth != 0 {
		o.MaxDepth = cfg.MaxDepth
	}
	return nil
}

func (o *options) newParser(l srl.Listener, input []byte) *srl.Parser {
	p := srl.New(l, input)
	p.SetOffset(o.Offset)
	p.SetMaxDepth(o.MaxDepth)
	return p
}

func loadConfig(path string) (*options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	var cfg options
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("config %s: invalid maxDepth %d", path, cfg.MaxDepth)
	}
	return &cfg, nil
}
