package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/placemat/pkg/errors"
	"github.com/matzehuels/placemat/pkg/render/conflict"
	"github.com/matzehuels/placemat/pkg/scene"
)

// conflictsCommand creates the conflicts command for rendering blocking
// relations of a resolved layout.
func (c *CLI) conflictsCommand() *cobra.Command {
	var (
		output string
		format string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "conflicts <layout.json>",
		Short: "Render the blocking relations of a layout",
		Long: `Render the blocking relations of a layout.

Produces a directed graph where an edge points from an element to the
element that rejected at least one of its candidates. Forced nodes fill
orange, suppressed nodes are dashed grey. Only contested elements are
drawn unless --all is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := scene.ReadLayoutFile(args[0])
			if err != nil {
				return err
			}
			return c.runConflicts(doc, args[0], output, format, all)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.conflicts.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", FormatDOT, "output format: dot, svg, png")
	cmd.Flags().BoolVar(&all, "all", false, "include uncontested elements")

	return cmd
}

func (c *CLI) runConflicts(doc scene.Layout, input, output, format string, all bool) error {
	dot := conflict.ToDOT(doc, conflict.Options{All: all})

	var data []byte
	var err error
	switch format {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = conflict.RenderSVG(dot)
	case "png":
		data, err = conflict.RenderPNG(dot)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg, png)", format)
	}
	if err != nil {
		return fmt.Errorf("render conflicts: %w", err)
	}

	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		base = strings.TrimSuffix(base, ".layout")
		output = base + ".conflicts." + format
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Conflict graph rendered")
	printFile(output)
	return nil
}
