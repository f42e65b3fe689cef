package main

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	vybiumstackvm "github.com/vybium/vybium-stack-vm/pkg/vybium-stack-vm"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vybium-stack-vm",
	Short: "An arithmetized 4-slot stack VM.",
	Long: `Execute stack VM programs, export their execution traces and
	prove or verify them against the VM's constraint system.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config := readConfig(cmd)
		log.SetLevel(config.Level())
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if !getFlag(cmd, "version") {
			fmt.Println(cmd.UsageString())
			return
		}

		fmt.Print("vybium-stack-vm ")
		if Version != "" {
			fmt.Printf("%s", Version)
		} else if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Printf("%s", info.Main.Version)
		} else {
			fmt.Printf("(unknown version)")
		}
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	defaults := vybiumstackvm.DefaultConfig()

	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("field", defaults.Field, "prime field (m31, goldilocks or bls12-377)")
	rootCmd.PersistentFlags().Int("queries", defaults.NumQueries, "number of trace rows opened by a proof")
	rootCmd.PersistentFlags().String("hash", defaults.HashFunction, "Fiat-Shamir hash function (sha3 or sha256)")
	rootCmd.PersistentFlags().String("log-level", defaults.LogLevel, "logging level")
}
