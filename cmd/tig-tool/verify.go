package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/luca-nik/tig-circuit-gen"
	"github.com/luca-nik/tig-circuit-gen/generator"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [challenge.manifest]",
	Short: "check that a manifest reproduces its recorded circuit",
	Run:   cmdVerify,
}

var fCircuit string

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&fCircuit, "circuit", "", "also check this circuit file against the manifest digest")
}

func cmdVerify(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing manifest path -- tig-tool verify -h for help")
		os.Exit(-1)
	}
	manifestPath := filepath.Clean(args[0])

	m, err := circuitgen.ReadManifest(manifestPath)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s difficulty %d\n", "loaded manifest", manifestPath, m.Difficulty)

	if m.Generator != circuitgen.Version.String() {
		fmt.Printf("%-30s manifest %s, tool %s\n", "generator version differs", m.Generator, circuitgen.Version)
	}

	src, err := generator.Generate(m.Seed, m.Config)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	if err := m.Check([]byte(src)); err != nil {
		fmt.Printf("%-30s %s\n", "regeneration mismatch", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s ok\n", "regeneration")

	if fCircuit != "" {
		b, err := os.ReadFile(fCircuit)
		if err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
		if err := m.Check(b); err != nil {
			fmt.Printf("%-30s %s does not match the manifest\n", "circuit file", fCircuit)
			os.Exit(-1)
		}
		fmt.Printf("%-30s %s matches\n", "circuit file", fCircuit)
	}
}
