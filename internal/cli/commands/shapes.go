package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitscan/pkg/extract"
	_ "github.com/leapstack-labs/unitscan/pkg/extract/shapes" // register extraction shapes
)

// NewShapesCommand creates the shapes command.
func NewShapesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "shapes [shape-id]",
		Short: "List available extraction shapes",
		Long: `List the registered extraction shapes.

Each shape recognizes one source pattern that carries SQL, such as an
assignment to a query's SQL.Text property or a sequence of SQL.Add calls.`,
		Example: `  # List all shapes
  unitscan shapes

  # Show details for a specific shape
  unitscan shapes SH02

  # Output as JSON
  unitscan shapes --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showShape(cmd, args[0], format)
			}
			return listShapes(cmd, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json")

	return cmd
}

// shapeInfo is the serializable view of a registered shape.
type shapeInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func shapeInfos(defs []extract.ShapeDef) []shapeInfo {
	infos := make([]shapeInfo, 0, len(defs))
	for _, d := range defs {
		infos = append(infos, shapeInfo{ID: d.ID, Name: d.Name, Description: d.Description})
	}
	return infos
}

func listShapes(cmd *cobra.Command, format string) error {
	w := cmd.OutOrStdout()
	infos := shapeInfos(extract.Shapes())

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	_, _ = fmt.Fprintf(w, "Extraction Shapes (%d)\n\n", len(infos))
	for _, info := range infos {
		_, _ = fmt.Fprintf(w, "  %s  %-12s %s\n", info.ID, info.Name, info.Description)
	}
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "Use 'unitscan shapes <shape-id>' for details")
	return nil
}

func showShape(cmd *cobra.Command, shapeID, format string) error {
	w := cmd.OutOrStdout()

	def, ok := extract.ShapeByID(shapeID)
	if !ok {
		return fmt.Errorf("shape %q not found", shapeID)
	}
	info := shapeInfo{ID: def.ID, Name: def.Name, Description: def.Description}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	_, _ = fmt.Fprintf(w, "%s - %s\n\n", info.ID, info.Name)
	_, _ = fmt.Fprintf(w, "  %s\n", info.Description)
	return nil
}
