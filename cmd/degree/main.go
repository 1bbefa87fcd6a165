// Command degree writes a degree-descending vertex order for a graph.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/order"
)

var (
	orderFile  string
	undirected bool
)

func main() {
	cmd := &cobra.Command{
		Use:          "degree -o ordering graph",
		Short:        "Order vertices by degree, highest first",
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&orderFile, "ordering", "o", "", "file to write the vertex order")
	cmd.Flags().BoolVar(&undirected, "undirected", false, "treat every arc as bidirectional")
	cmd.MarkFlagRequired("ordering")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	g, err := graph.ReadFile(args[0], undirected)
	if err != nil {
		return err
	}
	fmt.Printf("Graph has %d vertices and %d arcs\n", g.N(), g.M())
	return order.ByDegree(g).WriteFile(orderFile)
}
