package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/placemat/pkg/errors"
	"github.com/matzehuels/placemat/pkg/pipeline"
	"github.com/matzehuels/placemat/pkg/render/conflict"
	"github.com/matzehuels/placemat/pkg/render/overlay"
	"github.com/matzehuels/placemat/pkg/scene"
)

// maxConcurrentScenes bounds batch resolution parallelism.
const maxConcurrentScenes = 4

// Output format constants.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
)

// layoutCommand creates the layout command for resolving scenes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		outDir    string
		formats   string
		rulesPath string
		noCache   bool
		refresh   bool
		labels    bool
	)

	cmd := &cobra.Command{
		Use:   "layout <scene.json> [scene.json...]",
		Short: "Resolve scene files into layout documents",
		Long: `Resolve scene files into layout documents.

The layout command reads declarative scene files, routes campaign
arrows, and places every label through the collision engine. Passing
several scenes resolves them concurrently, one isolated pass each.

Output formats:
  json   the layout document (default)
  svg    a debug overlay of accepted boxes and routes
  dot    the conflict graph in Graphviz DOT format

Results are cached locally; identical scene and rules replay instantly.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--output requires a single scene; use --out-dir for batches")
			}
			rules, err := loadRules(rulesPath)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args, layoutParams{
				output:  output,
				outDir:  outDir,
				formats: parseFormats(formats),
				rules:   rules,
				noCache: noCache,
				refresh: refresh,
				labels:  labels,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for output files (default: next to each input)")
	cmd.Flags().StringVarP(&formats, "format", "f", FormatJSON, "comma-separated output formats: json, svg, dot")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "TOML placement rule file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&labels, "labels", false, "draw label text in the SVG overlay")

	return cmd
}

type layoutParams struct {
	output  string
	outDir  string
	formats []string
	rules   *pipeline.Rules
	noCache bool
	refresh bool
	labels  bool
}

// sceneOutcome is one scene's result, reported after the batch settles.
type sceneOutcome struct {
	input  string
	files  []string
	result *pipeline.Result
	err    error
}

// runLayout resolves every scene and writes the requested outputs.
func (c *CLI) runLayout(ctx context.Context, inputs []string, p layoutParams) error {
	if err := validateFormats(p.formats); err != nil {
		return err
	}

	runner, err := c.newRunner(p.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Resolving %d scene(s)...", len(inputs)))
	spinner.Start()

	outcomes := make([]sceneOutcome, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentScenes)
	for i, input := range inputs {
		g.Go(func() error {
			outcomes[i] = c.resolveScene(gctx, runner, input, p)
			return outcomes[i].err
		})
	}
	err = g.Wait()

	if err != nil {
		spinner.StopWithError("Layout failed")
	} else {
		spinner.Stop()
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, o := range outcomes {
		if o.err != nil {
			printError("%s: %v", o.input, o.err)
			continue
		}
		printSuccess("%s", o.result.SceneName)
		for _, f := range o.files {
			printFile(f)
		}
		stats := o.result.Layout.Stats
		printStats(stats.Placed, stats.Forced, stats.Suppressed, o.result.CacheInfo.Hit)
	}

	if err == nil && len(outcomes) == 1 && contains(p.formats, FormatJSON) {
		fmt.Println()
		printNextStep("Inspect", "placemat inspect "+outcomes[0].files[0])
	}
	return err
}

// resolveScene runs the pipeline for one scene and writes its outputs.
func (c *CLI) resolveScene(ctx context.Context, runner *pipeline.Runner, input string, p layoutParams) sceneOutcome {
	out := sceneOutcome{input: input}

	scn, err := scene.ReadSceneFile(input)
	if err != nil {
		out.err = fmt.Errorf("load scene: %w", err)
		return out
	}

	result, err := runner.Execute(ctx, scn, pipeline.Options{
		Rules:   p.rules,
		Refresh: p.refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		out.err = fmt.Errorf("resolve: %w", err)
		return out
	}
	out.result = result

	base := outputBase(input, p.output, p.outDir)
	for _, format := range p.formats {
		path, err := writeFormat(base, format, scn, result, p.labels)
		if err != nil {
			out.err = err
			return out
		}
		out.files = append(out.files, path)
	}
	return out
}

// writeFormat writes one output format and returns its path.
func writeFormat(base, format string, scn *scene.Scene, result *pipeline.Result, labels bool) (string, error) {
	doc := *result.Layout
	switch format {
	case FormatJSON:
		path := base + ".layout.json"
		if err := scene.WriteLayoutFile(doc, path); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		return path, nil
	case FormatSVG:
		path := base + ".overlay.svg"
		opts := []overlay.Option{overlay.WithScene(scn)}
		if labels {
			opts = append(opts, overlay.WithLabels())
		}
		if err := os.WriteFile(path, overlay.RenderSVG(doc, opts...), 0644); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		return path, nil
	case FormatDOT:
		path := base + ".conflicts.dot"
		dot := conflict.ToDOT(doc, conflict.Options{})
		if err := os.WriteFile(path, []byte(dot), 0644); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		return path, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format: %q", format)
}

// outputBase computes the extension-free output path for an input scene.
func outputBase(input, output, outDir string) string {
	if output != "" {
		return strings.TrimSuffix(output, ".layout.json")
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if outDir != "" {
		base = filepath.Join(outDir, filepath.Base(base))
	}
	return base
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{FormatJSON}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		switch f {
		case FormatJSON, FormatSVG, FormatDOT:
		default:
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, svg, dot)", f)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
