package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luca-nik/tig-circuit-gen/calibration"
)

// calibrateCmd represents the calibrate command
var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "measure reducibility consistency of a difficulty tier",
	Long: `calibrate generates a batch of seeded instances for one difficulty tier,
compiles each with circom --O1, and reports how consistently the optimizer
shrinks them. Requires circom on PATH.`,
	Run: cmdCalibrate,
}

var (
	fSamples int
	fJobs    int
	fKeep    bool
)

func init() {
	rootCmd.AddCommand(calibrateCmd)

	calibrateCmd.Flags().Uint32Var(&fDifficulty, "difficulty", 1, "difficulty tier to calibrate")
	calibrateCmd.Flags().IntVar(&fSamples, "samples", calibration.DefaultSamples, "instances to measure")
	calibrateCmd.Flags().IntVar(&fJobs, "jobs", 0, "concurrent compiler invocations -- default is one per CPU")
	calibrateCmd.Flags().BoolVar(&fKeep, "keep", false, "keep generated circuits and compiler artifacts")
}

func cmdCalibrate(cmd *cobra.Command, args []string) {
	opts := []calibration.Option{calibration.WithSamples(fSamples)}
	if fJobs > 0 {
		opts = append(opts, calibration.WithJobs(fJobs))
	}
	if fKeep {
		opts = append(opts, calibration.WithKeepArtifacts())
	}

	rep, err := calibration.Run(cmd.Context(), fDifficulty, opts...)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	for _, s := range rep.Samples {
		if s.Err != nil {
			fmt.Printf("%-30s %s\n", "sample failed", s.Err)
		}
	}
	fmt.Printf("%-30s %d\n", "difficulty", rep.Difficulty)
	fmt.Printf("%-30s %s\n", "config", rep.Config)
	fmt.Printf("%-30s %d measured, %d failed\n", "samples", rep.Summary.N, rep.Failed)
	fmt.Printf("%-30s %.4f\n", "mean reducibility", rep.Summary.Mean)
	fmt.Printf("%-30s %.4f\n", "sigma", rep.Summary.Std)

	if rep.Consistent() {
		fmt.Printf("PASS: difficulty %d is consistent (sigma %.4f < %.2f)\n",
			rep.Difficulty, rep.Summary.Std, calibration.ConsistencyThreshold)
		return
	}
	fmt.Printf("FAIL: sigma %.4f exceeds %.2f, difficulty %d needs parameter adjustment\n",
		rep.Summary.Std, calibration.ConsistencyThreshold, rep.Difficulty)
}
