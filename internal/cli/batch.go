package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sketchvec/internal/edges"
	"sketchvec/internal/edges/backends"
	"sketchvec/internal/pipeline"
)

func batchCmd(root *rootOptions) *cobra.Command {
	var cfgFlags configFlags
	var backendName string
	var format string
	var outDir string
	var jobs int

	c := &cobra.Command{
		Use:   "batch <images...>",
		Short: "Vectorize several images concurrently into a directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cfgFlags.resolve()
			if err != nil {
				return err
			}
			if format != pipeline.FormatJSON && format != pipeline.FormatSVG {
				return fmt.Errorf("unsupported format %q (want json or svg)", format)
			}
			backend, err := backends.New(backendName, root.log)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			inputs := make([]pipeline.Input, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				inputs = append(inputs, pipeline.Input{Name: path, Data: data})
			}

			dsts := outputPaths(outDir, args, format)

			v := pipeline.NewVectorizer(backend, root.log)
			results, err := v.VectorizeBatch(cmd.Context(), inputs, cfg, jobs)
			if err != nil {
				return err
			}

			var failed, undecodable int
			for i, r := range results {
				if r.Err != nil {
					failed++
					if edges.IsDecodeError(r.Err) {
						undecodable++
					}
					fmt.Fprintf(root.stderr, "%s: %v\n", r.Name, r.Err)
					continue
				}

				dst := dsts[i]
				if err := pipeline.SaveFile(dst, r.Result, format); err != nil {
					return err
				}

				status := fmt.Sprintf("%d strokes", r.Result.Strokes.Len())
				if r.Result.Strokes.IsEmpty() {
					status = "nothing to draw"
				}
				fmt.Fprintf(root.stdout, "%s -> %s (%s)\n", r.Name, dst, status)
			}

			switch {
			case failed == 0:
				return nil
			case failed == undecodable:
				return &edges.DecodeError{
					Reason: edges.ReasonUnsupported,
					Err:    fmt.Errorf("%d of %d inputs could not be decoded", failed, len(results)),
				}
			default:
				return fmt.Errorf("%d of %d inputs failed", failed, len(results))
			}
		},
	}

	cfgFlags.register(c)
	registerBackendFlag(c, &backendName)
	c.Flags().StringVarP(&format, "format", "f", pipeline.FormatJSON, "Output format: json|svg")
	c.Flags().StringVarP(&outDir, "out-dir", "d", "", "Directory for the output files (required)")
	c.Flags().IntVarP(&jobs, "jobs", "j", 0, "Concurrent vectorizations (0 uses all CPUs)")

	_ = c.MarkFlagRequired("out-dir")
	return c
}

// outputPaths maps each input to <dir>/<base>.<format>, in input order. Inputs
// sharing a stem (a/page.png and b/page.png, or x.png and x.jpg) get
// -1, -2, ... suffixes after the first so no output overwrites another.
func outputPaths(dir string, inputs []string, format string) []string {
	used := make(map[string]bool, len(inputs))
	paths := make([]string, len(inputs))
	for i, input := range inputs {
		name := stem(input)
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s-%d", stem(input), n)
		}
		used[name] = true
		paths[i] = filepath.Join(dir, name+"."+format)
	}
	return paths
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
