package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seccompbpf/logging"
	"seccompbpf/seccomp"
)

var (
	compileOutput string
	compilePFC    bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <profile.jsonc>",
	Short: "Compile a JSONC filter profile into a BPF program",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file for the compiled BPF program (default: stdout)")
	compileCmd.Flags().BoolVar(&compilePFC, "pfc", false, "print the rule listing instead of compiled BPF")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	profilePath := args[0]

	db, err := seccomp.LoadProfile(profilePath)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	logging.WithOperation(logging.Default(), "compile").Info("loaded profile",
		"path", profilePath, "rules", len(db.Rules()), "arches", db.Arches())

	out := os.Stdout
	if compileOutput != "" {
		f, err := os.Create(compileOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if compilePFC {
		return db.ExportPFC(out)
	}
	return db.ExportBPF(out)
}
