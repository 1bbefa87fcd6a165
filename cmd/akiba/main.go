// Command akiba builds a hierarchical hub labeling from a vertex order
// using the pruned labeling algorithm.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hub_labeling/pkg/akiba"
	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/labeling"
	"hub_labeling/pkg/order"
)

var (
	orderFile  string
	labelFile  string
	undirected bool
	verbose    bool
)

func main() {
	cmd := &cobra.Command{
		Use:          "akiba [-l labeling] -o ordering graph",
		Short:        "Build a hierarchical hub labeling from a vertex order (pruned labeling)",
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&orderFile, "ordering", "o", "", "file with the vertex order")
	cmd.Flags().StringVarP(&labelFile, "labeling", "l", "", "file to write the labeling")
	cmd.Flags().BoolVar(&undirected, "undirected", false, "treat every arc as bidirectional")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.MarkFlagRequired("ordering")
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

	o, err := order.ReadFile(orderFile)
	if err != nil {
		return err
	}

	labels := labeling.New(g.N())
	if err := akiba.New(g).Run(o, labels); err != nil {
		return err
	}

	fmt.Printf("Average label size %g\n", labels.Avg())
	fmt.Printf("Maximum label size %d\n", labels.Max())

	if labelFile != "" {
		return labels.WriteFile(labelFile)
	}
	return nil
}
