// tig-tool generates, verifies and calibrates difficulty-tunable circom
// challenge circuits.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luca-nik/tig-circuit-gen"
)

var rootCmd = &cobra.Command{
	Use:   "tig-tool",
	Short: "difficulty-tunable circom challenge generator",
	Long: `tig-tool synthesizes circom circuits whose optimization difficulty scales
with a tier parameter. The same (seed, difficulty) pair always reproduces
the same circuit, so challenge issuers and solvers can derive instances
independently.`,
	Version: circuitgen.Version.String(),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print generator and supported compiler versions",
	Run:   cmdVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func cmdVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("%-30s %s\n", "generator", circuitgen.Version)
	fmt.Printf("%-30s >= %s\n", "supported circom", circuitgen.MinCompilerVersion)
	fmt.Printf("%-30s %s\n", "scalar field", circuitgen.Field())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
}
