// Command ghl builds an approximately optimal general hub labeling with
// the GHLp algorithm.
package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hub_labeling/pkg/ghl"
	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/labeling"
)

var (
	norm       string
	alpha      float64
	labelFile  string
	threads    int
	undirected bool
	verbose    bool
)

func main() {
	cmd := &cobra.Command{
		Use:          "ghl [-p norm] [-a alpha] [-l labeling] [-t threads] graph",
		Short:        "Build an approximately optimal hub labeling (GHLp)",
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&norm, "norm", "p", "1", "label p-norm to approximate; 'max' approximates the maximum label size")
	cmd.Flags().Float64VarP(&alpha, "alpha", "a", 1.1, "staleness factor (>= 1.0) trading speed against labeling size")
	cmd.Flags().StringVarP(&labelFile, "labeling", "l", "", "file to write the labeling")
	cmd.Flags().IntVarP(&threads, "threads", "t", 0, "number of worker threads (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&undirected, "undirected", false, "treat every arc as bidirectional")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	if alpha < 1.0 {
		return fmt.Errorf("alpha must be at least 1.0, got %g", alpha)
	}

	g, err := graph.ReadFile(args[0], undirected)
	if err != nil {
		return err
	}
	fmt.Printf("Graph has %d vertices and %d arcs\n", g.N(), g.M())

	p := 1.0
	if norm == "max" {
		p = math.Log(float64(g.N()))
	} else {
		p, err = strconv.ParseFloat(norm, 64)
		if err != nil || p <= 0 {
			return fmt.Errorf("invalid norm %q", norm)
		}
	}

	labels := labeling.New(g.N())
	ghl.New(g, threads).Run(labels, alpha, p)

	fmt.Printf("Average label size %g\n", labels.Avg())
	fmt.Printf("Maximum label size %d\n", labels.Max())

	if labelFile != "" {
		return labels.WriteFile(labelFile)
	}
	return nil
}
