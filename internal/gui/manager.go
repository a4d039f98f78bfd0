package gui

import (
	"fyne.io/fyne/v2"

	"sketchvec/internal/logger"
	"sketchvec/internal/pipeline"
)

type Manager struct {
	window     fyne.Window
	controller *Controller
	view       *View
	logger     logger.Logger
	isShutdown bool
}

// NewManager wires the view and controller around coordinator. backendNames
// feeds the backend selector; its first entry must be the coordinator's
// current backend.
func NewManager(window fyne.Window, coordinator *pipeline.Coordinator, backends BackendFactory, backendNames []string, log logger.Logger) *Manager {
	manager := &Manager{
		window: window,
		logger: log,
	}

	manager.view = NewView(window, backendNames)
	manager.controller = NewController(coordinator, backends, log)
	manager.view.SetController(manager.controller)
	manager.controller.SetView(manager.view)

	log.Info("GUIManager", "initialized", map[string]interface{}{
		"window_title": window.Title(),
		"backends":     backendNames,
	})

	return manager
}

func (m *Manager) GetMainContainer() *fyne.Container {
	return m.view.GetMainContainer()
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

func (m *Manager) Show() {
	m.view.Show()
	m.logger.Info("GUIManager", "GUI displayed", nil)
}

func (m *Manager) UpdateStatus(status string) {
	fyne.Do(func() {
		m.view.SetStatus(status)
	})
}

func (m *Manager) ShowError(title string, err error) {
	fyne.Do(func() {
		m.view.ShowError(title, err)
	})
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.logger.Info("GUIManager", "shutdown initiated", nil)

	if m.controller != nil {
		m.controller.Shutdown()
	}

	m.logger.Info("GUIManager", "shutdown completed", nil)
}
