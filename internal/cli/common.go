package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"sketchvec/internal/config"
	"sketchvec/internal/edges/backends"
)

// configFlags are shared by every command that resolves a configuration.
type configFlags struct {
	path   string
	preset string
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "config", "c", "", "YAML configuration file (its preset key replaces --preset)")
	cmd.Flags().StringVarP(&f.preset, "preset", "p", config.PresetDefault,
		"Preset: "+strings.Join(config.PresetNames(), "|"))
}

func (f *configFlags) resolve() (config.VectorizationConfig, error) {
	if f.path != "" {
		return config.Load(f.path)
	}
	return config.Preset(f.preset)
}

func registerBackendFlag(cmd *cobra.Command, name *string) {
	cmd.Flags().StringVarP(name, "backend", "b", backends.Native,
		"Edge backend: "+strings.Join(backends.Names(), "|"))
}
