package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sketchvec/internal/edges/backends"
	"sketchvec/internal/pipeline"
	"sketchvec/internal/render"
)

func vectorizeCmd(root *rootOptions) *cobra.Command {
	var cfgFlags configFlags
	var backendName string
	var format string
	var out string
	var preview string

	c := &cobra.Command{
		Use:   "vectorize <image>",
		Short: "Vectorize one image and print its strokes",
		Args:  cobra.ExactArgs(1),
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

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			res, err := pipeline.NewVectorizer(backend, root.log).Run(data, cfg)
			if err != nil {
				return err
			}
			res.Name = args[0]

			if res.Strokes.IsEmpty() {
				fmt.Fprintln(root.stderr, "nothing to draw")
			}

			if out == "" {
				if err := writeResult(root.stdout, res, format); err != nil {
					return err
				}
			} else if err := pipeline.SaveFile(out, res, format); err != nil {
				return err
			}

			if preview != "" {
				opts := render.DefaultPreviewOptions(res.Width, res.Height, res.WorldScale)
				if err := writePreview(preview, res, opts); err != nil {
					return err
				}
			}

			root.log.Debug("CLI", "vectorize finished", map[string]interface{}{
				"input":   args[0],
				"strokes": res.Strokes.Len(),
				"points":  res.Stats.Points,
			})
			return nil
		},
	}

	cfgFlags.register(c)
	registerBackendFlag(c, &backendName)
	c.Flags().StringVarP(&format, "format", "f", pipeline.FormatJSON, "Output format: json|svg")
	c.Flags().StringVarP(&out, "out", "o", "", "Output file (stdout when omitted)")
	c.Flags().StringVar(&preview, "preview", "", "Also write a PNG preview of the strokes")
	return c
}

func writeResult(w io.Writer, res *pipeline.Result, format string) error {
	bw := bufio.NewWriter(w)
	if err := pipeline.Save(bw, res, format); err != nil {
		return err
	}
	return bw.Flush()
}

func writePreview(path string, res *pipeline.Result, opts render.PreviewOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render.WritePNG(f, res.Strokes, opts)
}
