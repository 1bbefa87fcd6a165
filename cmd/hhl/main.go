// Command hhl builds a hierarchical hub labeling with the greedy
// path-greedy or label-greedy algorithm, optionally assuming unique
// shortest paths.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/hhl"
	"hub_labeling/pkg/labeling"
	"hub_labeling/pkg/order"
)

var (
	labelGreedy bool
	usp         bool
	labelFile   string
	orderFile   string
	threads     int
	undirected  bool
	verbose     bool
)

func main() {
	cmd := &cobra.Command{
		Use:          "hhl [-w] [-u] [-l labeling] [-o ordering] [-t threads] graph",
		Short:        "Build a hierarchical hub labeling with a greedy algorithm",
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}
	cmd.Flags().BoolVarP(&labelGreedy, "label-greedy", "w", false, "use label-greedy instead of path-greedy selection")
	cmd.Flags().BoolVarP(&usp, "usp", "u", false, "assume shortest paths are unique")
	cmd.Flags().StringVarP(&labelFile, "labeling", "l", "", "file to write the labeling")
	cmd.Flags().StringVarP(&orderFile, "ordering", "o", "", "file to write the vertex order")
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

	g, err := graph.ReadFile(args[0], undirected)
	if err != nil {
		return err
	}
	fmt.Printf("Graph has %d vertices and %d arcs\n", g.N(), g.M())

	mode := hhl.PathGreedy
	if labelGreedy {
		mode = hhl.LabelGreedy
	}

	labels := labeling.New(g.N())
	var ord order.Order
	if usp {
		ord = hhl.NewUHHL(g, threads).Run(mode, labels)
	} else {
		ord = hhl.New(g, threads).Run(mode, labels)
	}

	fmt.Printf("Average label size %g\n", labels.Avg())
	fmt.Printf("Maximum label size %d\n", labels.Max())

	if labelFile != "" {
		if err := labels.WriteFile(labelFile); err != nil {
			return err
		}
	}
	if orderFile != "" {
		if err := ord.WriteFile(orderFile); err != nil {
			return err
		}
	}
	return nil
}
