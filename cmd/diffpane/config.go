package main

import (
	"fmt"

	"github.com/fwojciec/diffpane"
	"github.com/fwojciec/diffpane/yaml"
	"github.com/spf13/cobra"
)

func (a *App) configCmd() *cobra.Command {
	var initialize bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := yaml.NewSettingsStore(a.configPath)
			if initialize {
				if err := store.Save(diffpane.DefaultSettings()); err != nil {
					return err
				}
				fmt.Fprintf(a.Stderr, "wrote %s\n", store.Path())
			}

			settings, err := a.settings(cmd)
			if err != nil {
				return err
			}
			b, err := yaml.Marshal(settings)
			if err != nil {
				return err
			}
			_, err = a.Stdout.Write(b)
			return err
		},
	}
	cmd.Flags().BoolVar(&initialize, "init", false, "write the default settings to the settings file")
	return cmd
}
