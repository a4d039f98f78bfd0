package cli

import (
	"github.com/spf13/cobra"

	"sketchvec/internal/config"
)

func configCmd(root *rootOptions) *cobra.Command {
	var cfgFlags configFlags

	c := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cfgFlags.resolve()
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg.Normalized())
			if err != nil {
				return err
			}
			_, err = root.stdout.Write(data)
			return err
		},
	}

	cfgFlags.register(c)
	return c
}
