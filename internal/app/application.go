// Package app hosts the sketchview desktop viewer.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"sketchvec/internal/edges"
	"sketchvec/internal/edges/backends"
	"sketchvec/internal/gui"
	"sketchvec/internal/gui/widgets"
	"sketchvec/internal/logger"
	"sketchvec/internal/pipeline"
)

const (
	AppName    = "Sketchview"
	AppID      = "dev.sketchvec.sketchview"
	AppVersion = "0.3.0"
)

type shutdownHandler interface {
	Shutdown()
}

type Application struct {
	fyneApp       fyne.App
	window        fyne.Window
	guiManager    *gui.Manager
	coordinator   *pipeline.Coordinator
	logger        logger.Logger
	shutdownables []shutdownHandler
	ctx           context.Context
	cancel        context.CancelFunc
	shutdown      chan struct{}
	shutdownOnce  sync.Once
}

func NewApplication() (*Application, error) {
	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
		Build:   1,
	})

	fyneApp := app.NewWithID(AppID)
	fyneApp.Settings().SetTheme(gui.NewTheme())
	window := fyneApp.NewWindow(AppName)

	windowSize := calculateMinimumWindowSize()
	window.Resize(windowSize)
	window.SetPadded(false)
	window.CenterOnScreen()
	window.SetMaster()

	ctx, cancel := context.WithCancel(context.Background())
	logLevel := logger.LevelFromEnv()
	log := logger.NewConsoleLogger(logLevel)

	log.Info("Application", "starting application", map[string]interface{}{
		"version":       AppVersion,
		"window_width":  windowSize.Width,
		"window_height": windowSize.Height,
		"log_level":     logLevel.String(),
	})

	factory := backendFactory(log)
	backendNames := backends.Names()
	backend, err := factory(backendNames[0])
	if err != nil {
		cancel()
		return nil, err
	}

	coordinator := pipeline.NewCoordinator(backend, log)
	guiManager := gui.NewManager(window, coordinator, factory, backendNames, log)

	application := &Application{
		fyneApp:     fyneApp,
		window:      window,
		guiManager:  guiManager,
		coordinator: coordinator,
		logger:      log,
		ctx:         ctx,
		cancel:      cancel,
		shutdown:    make(chan struct{}),
		shutdownables: []shutdownHandler{
			coordinator,
			guiManager,
		},
	}

	application.setupMenu()
	application.setupSignalHandling()
	log.Info("Application", "initialization complete", nil)
	return application, nil
}

// backendFactory builds edge backends for the toolbar selector. The OpenCV
// backend is created lazily so the viewer starts even when it is never used.
func backendFactory(log logger.Logger) gui.BackendFactory {
	return func(name string) (edges.Backend, error) {
		return backends.New(name, log)
	}
}

func (a *Application) setupMenu() {
	fileMenu := fyne.NewMenu("File")
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			fyne.Do(a.showAbout)
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

func (a *Application) showAbout() {
	metadata := a.fyneApp.Metadata()

	name := metadata.Name
	if name == "" {
		name = AppName
	}
	version := metadata.Version
	if version == "" {
		version = AppVersion
	}

	aboutContent := container.NewVBox(
		widget.NewLabel(name),
		widget.NewLabel(fmt.Sprintf("Version: %s", version)),
		widget.NewLabel("Raster to pen-stroke vectorizer"),
		widget.NewLabel(""),
		widget.NewLabel("Runtime Info:"),
		widget.NewLabel(fmt.Sprintf("Go: %s", runtime.Version())),
		widget.NewLabel(fmt.Sprintf("Platform: %s/%s", runtime.GOOS, runtime.GOARCH)),
		widget.NewLabel(fmt.Sprintf("Edge backend: %s", a.coordinator.BackendName())),
	)

	dialog.ShowCustom("About", "Close", aboutContent, a.window)
}

func calculateMinimumWindowSize() fyne.Size {
	imageDisplayWidth := widgets.ImageAreaWidth * 2
	toolbarHeight := float32(50)
	parametersHeight := float32(180)

	return fyne.Size{
		Width:  float32(imageDisplayWidth + 100),
		Height: float32(widgets.ImageAreaHeight + toolbarHeight + parametersHeight + 100),
	}
}

func (a *Application) setupSignalHandling() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			a.logger.Info("Application", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			a.initiateShutdown()
		case <-a.ctx.Done():
			return
		}
	}()
}

func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested via window close", nil)
		a.initiateShutdown()
		a.window.Close()
	})

	a.guiManager.Show()

	go func() {
		<-a.shutdown
		fyne.Do(a.fyneApp.Quit)
	}()

	a.fyneApp.Run()
	return nil
}

func (a *Application) initiateShutdown() {
	a.shutdownOnce.Do(func() {
		close(a.shutdown)

		a.logger.Info("Application", "shutdown sequence initiated", map[string]interface{}{
			"components": len(a.shutdownables),
		})

		a.cancel()

		for i := len(a.shutdownables) - 1; i >= 0; i-- {
			component := a.shutdownables[i]

			done := make(chan struct{})
			go func() {
				defer close(done)
				component.Shutdown()
			}()

			select {
			case <-done:
			case <-time.After(10 * time.Second):
				a.logger.Warning("Application", "component shutdown timeout", map[string]interface{}{
					"component_index": i,
				})
			}
		}

		a.logger.Info("Application", "shutdown sequence completed", nil)
	})
}
