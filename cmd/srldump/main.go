// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program srldump reads SRL values from files or standard input and prints
// the parser events or a JSON rendering of each.
//
// Usage:
//
//	srldump events [flags] [file ...]
//	srldump json [--path p] [flags] [file ...]
//	srldump tokens [flags] [file ...]
//
// With no file arguments, or with "-", input is read from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/creachadair/srl"
	"github.com/creachadair/srl/ast"
	"github.com/creachadair/srl/ast/cursor"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:          "srldump",
		Short:        "Inspect SRL serialized values",
		SilenceUsage: true,
	}
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return opts.resolve(cmd)
	}
	pf := root.PersistentFlags()
	pf.IntVar(&opts.Offset, "offset", 0, "Base offset added to reported positions")
	pf.IntVar(&opts.MaxDepth, "max-depth", srl.DefaultMaxDepth, "Maximum nesting depth")
	pf.StringVar(&opts.configPath, "config", "", "Path of a HuJSON settings file")

	root.AddCommand(
		&cobra.Command{
			Use:   "events [file ...]",
			Short: "Print the parser events for each input",
			RunE: func(cmd *cobra.Command, args []string) error {
				return forEachInput(cmd, args, func(w io.Writer, data []byte) error {
					p := opts.newParser(&eventPrinter{w: w}, data)
					return p.Parse()
				})
			},
		},
		newJSONCmd(&opts),
		&cobra.Command{
			Use:   "tokens [file ...]",
			Short: "Print the lexical tokens of each input",
			RunE: func(cmd *cobra.Command, args []string) error {
				return forEachInput(cmd, args, func(w io.Writer, data []byte) error {
					for _, tok := range srl.Tokenize(data, opts.Offset) {
						fmt.Fprintln(w, tok)
					}
					return nil
				})
			},
		},
	)
	return root
}

func newJSONCmd(opts *options) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "json [file ...]",
		Short: "Print each input as JSON",
		Long: `Print each input as JSON.

With --path, print only the value reached by following the path from the
root. The path is a comma-separated list of keys, where an element #n selects
the entry at position n (negative positions count from the end):

  srldump json --path list,#0,name input.srl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return forEachInput(cmd, args, func(w io.Writer, data []byte) error {
				v, err := ast.ParseWith(opts.newParser(nil, data))
				if err != nil {
					return err
				}
				if path != "" {
					c := cursor.New(v).Down(cursor.ParsePath(path)...)
					if err := c.Err(); err != nil {
						return err
					}
					v = c.Value()
				}
				_, err = fmt.Fprintln(w, v.JSON())
				return err
			})
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Comma-separated path of the value to print")
	return cmd
}

// forEachInput reads each named input in turn and calls f with its contents.
// The name "-" and an empty list denote stdin.
func forEachInput(cmd *cobra.Command, args []string, f func(io.Writer, []byte) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	w := cmd.OutOrStdout()
	for _, name := range args {
		var data []byte
		var err error
		if name == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return err
		}
		if err := f(w, data); err != nil {
			if name == "-" {
				return err
			}
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
