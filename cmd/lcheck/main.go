// Command lcheck prints labeling statistics and optionally verifies the
// labeling against ground-truth Dijkstra. Exit codes: 0 labels OK, 1 I/O
// or validation failure, 2 labels failed verification.
package main

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/labeling"
)

var (
	check      bool
	labelFile  string
	threads    int
	undirected bool
	verbose    bool
)

var errBadLabels = errors.New("labels failed verification")

func main() {
	cmd := &cobra.Command{
		Use:          "lcheck [-c] -l labeling [-t threads] graph",
		Short:        "Print labeling statistics and optionally verify against Dijkstra",
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}
	cmd.Flags().BoolVarP(&check, "check", "c", false, "verify the labels (without this print statistics only)")
	cmd.Flags().StringVarP(&labelFile, "labeling", "l", "", "file with the labeling")
	cmd.Flags().IntVarP(&threads, "threads", "t", 0, "number of worker threads (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&undirected, "undirected", false, "treat every arc as bidirectional")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.MarkFlagRequired("labeling")
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errBadLabels) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	g, err := graph.ReadFile(args[0], undirected)
	if err != nil {
		return err
	}
	fmt.Printf("Graph has %d vertices and %d arcs\n", g.N(), g.M())

	labels, err := labeling.ReadFile(labelFile, g.N())
	if err != nil {
		return err
	}

	if check {
		if !labeling.Check(g, labels, threads) {
			fmt.Println("Bad Labels")
			return errBadLabels
		}
		fmt.Println("Labels OK")
	}

	fmt.Printf("Average label size %g\n", labels.Avg())
	fmt.Printf("Maximum label size %d\n", labels.Max())
	return nil
}
