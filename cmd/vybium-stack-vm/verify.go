package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/spf13/cobra"

	vybiumstackvm "github.com/vybium/vybium-stack-vm/pkg/vybium-stack-vm"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [flags] program_file proof_file",
	Short: "Verify a proof against a program.",
	Long: `Check that a proof was produced for the given program and that the
	opened trace rows satisfy every constraint. Exits with status 1 when the
	proof is rejected.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		program := readProgram(args[0])
		proof := readFile(args[1])

		result, err := vybiumstackvm.Verify(readConfig(cmd), program, proof)
		if err != nil {
			fatal(err)
		}

		if !result.Valid {
			fmt.Printf("proof rejected: %s\n", result.Error)
			os.Exit(1)
		}

		claim, err := vybiumstackvm.DecodeClaim(proof)
		if err != nil {
			fatal(err)
		}

		fmt.Printf("proof valid (%d ms)\n", result.VerificationTimeMs)
		for i, v := range claim.Output {
			fmt.Printf("slot %d: %s\n", i, new(big.Int).SetBytes(v))
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
