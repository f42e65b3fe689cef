package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	vybiumstackvm "github.com/vybium/vybium-stack-vm/pkg/vybium-stack-vm"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fatal(err)
	}

	return r
}

func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fatal(err)
	}

	return r
}

func getInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fatal(err)
	}

	return r
}

// readConfig builds the configuration from the persistent flags
func readConfig(cmd *cobra.Command) *vybiumstackvm.Config {
	config := vybiumstackvm.DefaultConfig().
		WithField(getString(cmd, "field")).
		WithNumQueries(getInt(cmd, "queries")).
		WithHashFunction(getString(cmd, "hash")).
		WithLogLevel(getString(cmd, "log-level"))

	if err := config.Validate(); err != nil {
		fatal(err)
	}

	return config
}

// readFile reads a file, or standard input when filename is "-"
func readFile(filename string) []byte {
	var (
		data []byte
		err  error
	)

	if filename == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(filename)
	}

	if err != nil {
		fatal(err)
	}

	return data
}

// readProgram parses a program file
func readProgram(filename string) *vybiumstackvm.Program {
	program, err := vybiumstackvm.ParseProgram(readFile(filename))
	if err != nil {
		fatal(fmt.Errorf("%s: %w", filename, err))
	}

	return program
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "vybium-stack-vm: ERROR:", err)
	os.Exit(2)
}
