package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luca-nik/tig-circuit-gen"
	"github.com/luca-nik/tig-circuit-gen/generator"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "generate a seeded challenge circuit",
	Run:   cmdGenerate,
}

var (
	fSeed       string
	fDifficulty uint32
	fOutput     string
	fWitness    string
	fManifest   string
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&fSeed, "seed", "", "seed string, typically a block hash (required)")
	generateCmd.Flags().Uint32Var(&fDifficulty, "difficulty", 1, "difficulty tier")
	generateCmd.Flags().StringVar(&fOutput, "output", "challenge.circom", "specifies full path for the circuit source")
	generateCmd.Flags().StringVar(&fWitness, "witness", "", "also write deterministic witness inputs to this path")
	generateCmd.Flags().StringVar(&fManifest, "manifest", "", "also write a reproducibility manifest to this path")
	_ = generateCmd.MarkFlagRequired("seed")
}

func cmdGenerate(cmd *cobra.Command, args []string) {
	cfg := circuitgen.Scale(fDifficulty)
	src, err := generator.Generate(fSeed, cfg)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	if err := os.WriteFile(fOutput, []byte(src), 0o644); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %-d constraints\n", "generated circuit", fOutput, cfg.TargetConstraints)

	if fWitness != "" {
		b, err := generator.WitnessJSON(fSeed)
		if err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
		if err := os.WriteFile(fWitness, b, 0o644); err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
		fmt.Printf("%-30s %s\n", "generated witness inputs", fWitness)
	}

	if fManifest != "" {
		m := circuitgen.NewManifest(fSeed, fDifficulty, cfg, []byte(src))
		if err := m.Write(fManifest); err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
		fmt.Printf("%-30s %s\n", "generated manifest", fManifest)
	}
}
