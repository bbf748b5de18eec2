package cmd

import (
	"fmt"
	"log"
	"os"

	"lpsimplex/internal/mps"
	"lpsimplex/internal/pivot"
	"lpsimplex/internal/simplex"

	"github.com/spf13/cobra"
)

var (
	solvePivotRule string
	solveMaxIter   int
)

var solveCmd = &cobra.Command{
	Use:   "solve [mps-file]",
	Short: "Solve a linear program given as an MPS file",
	Long:  `Read a fixed-column MPS file and solve it with the two-phase simplex method.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSolve(args[0])
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVar(&solvePivotRule, "rule", "bland", "pivot rule: bland or dantzig")
	solveCmd.Flags().IntVar(&solveMaxIter, "max-iterations", 10000, "iteration cap before aborting")
}

func runSolve(path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	m, err := mps.Read(f)
	if err != nil {
		log.Fatalf("failed to parse MPS file: %v", err)
	}

	opts := simplex.DefaultOptions()
	opts.MaxIter = solveMaxIter
	if solvePivotRule == string(pivot.RuleDantzig) {
		opts.Rule = pivot.RuleDantzig
	}

	result := simplex.SolveModel(m, opts)

	fmt.Printf("status:     %s\n", result.Code)
	fmt.Printf("iterations: %d\n", result.Iterations)
	if result.Code == simplex.Success {
		fmt.Printf("objective:  %g\n", result.Value)
		for i, v := range result.X {
			fmt.Printf("x[%d] = %g\n", i, v)
		}
	}
}
