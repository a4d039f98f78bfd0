package gui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"

	"sketchvec/internal/config"
	"sketchvec/internal/edges"
	"sketchvec/internal/logger"
	"sketchvec/internal/pipeline"
	"sketchvec/internal/render"
)

// BackendFactory builds an edge backend by name.
type BackendFactory func(name string) (edges.Backend, error)

const vectorizeTimeout = 60 * time.Second

type Controller struct {
	view        *View
	coordinator *pipeline.Coordinator
	backends    BackendFactory
	logger      logger.Logger

	mu               sync.RWMutex
	processingActive bool
	processCancel    context.CancelFunc
}

func NewController(coord *pipeline.Coordinator, backends BackendFactory, log logger.Logger) *Controller {
	return &Controller{
		coordinator: coord,
		backends:    backends,
		logger:      log,
	}
}

func (c *Controller) SetView(view *View) {
	c.view = view
	cfg := c.coordinator.Config()
	fyne.Do(func() {
		c.view.SetConfig(cfg)
	})
}

func (c *Controller) LoadImage() {
	c.view.ShowFileDialog(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			c.handleError("File selection error", err)
			return
		}
		if reader == nil {
			return
		}

		c.updateStatus("Loading image...")

		go func() {
			defer reader.Close()

			src, loadErr := c.coordinator.Load(reader, reader.URI().Path())

			fyne.Do(func() {
				if loadErr != nil {
					c.handleError("Image load error", loadErr)
					c.updateStatus("Ready")
					return
				}

				c.view.SetStrokeImage(nil, "")
				c.view.SetSourceImage(src.Image)
				c.view.SetStats(-1, 0, 0)
				c.updateStatus(fmt.Sprintf("Loaded %dx%d %s", src.Width, src.Height, src.Format))
			})
		}()
	})
}

func (c *Controller) ChangePreset(name string) {
	cfg, err := config.Preset(name)
	if err != nil {
		c.handleError("Preset error", err)
		return
	}
	if err := c.coordinator.SetConfig(cfg); err != nil {
		c.handleError("Preset error", err)
		return
	}

	fyne.Do(func() {
		c.view.SetConfig(cfg)
	})
	c.logger.Info("Controller", "preset selected", map[string]interface{}{
		"preset": name,
	})
}

func (c *Controller) ChangeBackend(name string) {
	backend, err := c.backends(name)
	if err != nil {
		c.handleError("Backend error", err)
		return
	}
	c.coordinator.SetBackend(backend)
	c.logger.Info("Controller", "backend selected", map[string]interface{}{
		"backend": backend.Name(),
	})
}

func (c *Controller) UpdateParameter(name string, value interface{}) {
	cfg, err := applyParameter(c.coordinator.Config(), name, value)
	if err != nil {
		c.handleError("Parameter update error", err)
		return
	}
	if err := c.coordinator.SetConfig(cfg); err != nil {
		c.handleError("Parameter update error", err)
	}
}

// Vectorize runs the pipeline off the UI goroutine and shows the preview
// when it finishes. Clicks while a run is active are ignored.
func (c *Controller) Vectorize() {
	if c.coordinator.Source() == nil {
		c.handleError("Vectorize error", pipeline.ErrNoSource)
		return
	}

	ctx, cancel := context.WithTimeout(c.coordinator.Context(), vectorizeTimeout)
	if !c.beginProcessing(cancel) {
		cancel()
		return
	}

	c.view.SetBusy(true)
	c.updateStatus("Vectorizing...")

	go func() {
		defer func() {
			c.endProcessing()
			cancel()
			fyne.Do(func() {
				c.view.SetBusy(false)
			})
		}()

		res, err := c.coordinator.Vectorize(ctx)
		if err != nil {
			fyne.Do(func() {
				c.handleError("Vectorize error", err)
				c.updateStatus("Vectorization failed")
			})
			return
		}

		opts := render.DefaultPreviewOptions(res.Width, res.Height, res.WorldScale)
		preview, err := render.Preview(res.Strokes, opts)

		fyne.Do(func() {
			if err != nil {
				c.handleError("Preview error", err)
				return
			}

			title := "Strokes"
			if res.Strokes.IsEmpty() {
				title = "Strokes (nothing to draw)"
			}
			c.view.SetStrokeImage(preview, title)
			c.view.SetStats(res.Strokes.Len(), res.Stats.Points, res.Stats.Duration)
			c.updateStatus("Vectorization completed")
		})
	}()
}

func (c *Controller) Export() {
	if c.coordinator.Result() == nil {
		c.handleError("Export error", pipeline.ErrNoResult)
		return
	}

	c.view.ShowSaveDialog(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			c.handleError("File save error", err)
			return
		}
		if writer == nil {
			return
		}

		if writer.URI().Extension() == "" {
			c.askFormatAndExport(writer)
			return
		}
		c.exportTo(writer, pipeline.FormatForPath(writer.URI().Path()))
	})
}

func (c *Controller) askFormatAndExport(writer fyne.URIWriteCloser) {
	originalPath := writer.URI().Path()
	writer.Close()

	if err := os.Remove(originalPath); err != nil {
		c.logger.Debug("Controller", "failed to remove empty file", map[string]interface{}{
			"path":  originalPath,
			"error": err.Error(),
		})
	}

	fyne.Do(func() {
		c.view.ShowFormatSelectionDialog(func(format string, confirmed bool) {
			if !confirmed {
				return
			}
			format = strings.ToLower(format)

			f, err := os.Create(originalPath + "." + format)
			if err != nil {
				c.handleError("File create error", err)
				return
			}
			c.exportTo(f, format)
		})
	})
}

func (c *Controller) exportTo(w io.WriteCloser, format string) {
	c.updateStatus("Exporting...")

	go func() {
		start := time.Now()
		saveErr := c.coordinator.Save(w, format)
		if cerr := w.Close(); saveErr == nil {
			saveErr = cerr
		}

		fyne.Do(func() {
			if saveErr != nil {
				c.handleError("Export error", saveErr)
				return
			}
			c.updateStatus("Exported " + strings.ToUpper(format))
			c.logger.Info("Controller", "strokes exported", map[string]interface{}{
				"format":    format,
				"save_time": time.Since(start),
			})
		})
	}()
}

func (c *Controller) CancelProcessing() {
	c.mu.Lock()
	if c.processCancel != nil {
		c.processCancel()
	}
	c.mu.Unlock()
}

func (c *Controller) beginProcessing(cancel context.CancelFunc) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.processingActive {
		return false
	}
	c.processingActive = true
	c.processCancel = cancel
	return true
}

func (c *Controller) endProcessing() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processingActive = false
	c.processCancel = nil
}

func (c *Controller) updateStatus(status string) {
	c.view.SetStatus(status)
}

func (c *Controller) handleError(title string, err error) {
	if errors.Is(err, context.Canceled) {
		c.logger.Debug("Controller", "operation cancelled", map[string]interface{}{
			"title": title,
		})
		return
	}
	c.logger.Error("Controller", err, map[string]interface{}{
		"title": title,
	})

	fyne.Do(func() {
		c.view.ShowError(title, err)
	})
}

func (c *Controller) Shutdown() {
	c.CancelProcessing()
	c.logger.Info("Controller", "shutdown completed", nil)
}
