package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	vybiumstackvm "github.com/vybium/vybium-stack-vm/pkg/vybium-stack-vm"
)

var columnNames = []string{
	"s0", "s1", "s2", "s3", "literal", "push", "add", "sub", "mul", "div", "aux",
}

var traceCmd = &cobra.Command{
	Use:   "trace [flags] program_file",
	Short: "Execute a program and print its execution trace.",
	Long: `Execute a program and print the padded execution trace, one row per
	line, or as a JSON array of rows with --json.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		machine, err := vybiumstackvm.NewVM(readConfig(cmd))
		if err != nil {
			fatal(err)
		}

		trace, err := machine.Execute(readProgram(args[0]))
		if err != nil {
			fatal(err)
		}

		if getFlag(cmd, "json") {
			if err := json.NewEncoder(os.Stdout).Encode(trace.Trace); err != nil {
				fatal(err)
			}
			return
		}

		fmt.Printf("%4s %s\n", "row", strings.Join(columnNames, " "))
		for i, row := range trace.Trace {
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = v.String()
			}

			marker := ""
			if i >= trace.UnpaddedHeight {
				marker = " (padding)"
			}
			fmt.Printf("%4d %s%s\n", i, strings.Join(cells, " "), marker)
		}
	},
}

func init() {
	traceCmd.Flags().Bool("json", false, "print the trace as JSON")
	rootCmd.AddCommand(traceCmd)
}
