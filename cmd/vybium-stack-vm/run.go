package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	vybiumstackvm "github.com/vybium/vybium-stack-vm/pkg/vybium-stack-vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] program_file",
	Short: "Execute a program and print the final stack.",
	Long: `Execute a program, one instruction per line ("Push(42)", "Add", ...)
	or JSON {"instructions": [...]}, and print the final stack top first.`,
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
			state := machine.GetState()
			fmt.Printf("aborted at instruction %d after %d cycles\n", state.InstructionPointer, state.CycleCount)
			fatal(err)
		}

		for i, v := range trace.Stack {
			fmt.Printf("slot %d: %s\n", i, v)
		}

		fmt.Printf("cycles: %d\n", trace.CycleCount)
		fmt.Printf("program digest: %016x\n", trace.ProgramDigest)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
