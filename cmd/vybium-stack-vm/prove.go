package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	vybiumstackvm "github.com/vybium/vybium-stack-vm/pkg/vybium-stack-vm"
)

var proveCmd = &cobra.Command{
	Use:   "prove [flags] program_file",
	Short: "Execute a program and prove its execution trace.",
	Long: `Execute a program, commit to its execution trace and write the CBOR
	encoded proof to the output file (or standard output).`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		proof, err := vybiumstackvm.Prove(readConfig(cmd), readProgram(args[0]))
		if err != nil {
			fatal(err)
		}

		output := getString(cmd, "output")
		if output == "" || output == "-" {
			if _, err := os.Stdout.Write(proof); err != nil {
				fatal(err)
			}
			return
		}

		if err := os.WriteFile(output, proof, 0o644); err != nil {
			fatal(err)
		}

		log.WithFields(log.Fields{"file": output, "bytes": len(proof)}).Info("wrote proof")
	},
}

func init() {
	proveCmd.Flags().StringP("output", "o", "", "proof file (default standard output)")
	rootCmd.AddCommand(proveCmd)
}
