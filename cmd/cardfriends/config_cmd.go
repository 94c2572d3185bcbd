package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jask/cardfriends/internal/config"
	"github.com/jask/cardfriends/internal/secrets"
)

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(redact(c.cfg)); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set-key <api-key>",
		Short: "Store the users API key outside the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.secretStore()
			if err != nil {
				return err
			}
			if err := store.Put(secrets.UsersAPI, args[0]); err != nil {
				return err
			}
			cmd.Println("api key stored")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear-key",
		Short: "Remove the stored users API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.secretStore()
			if err != nil {
				return err
			}
			return store.Delete(secrets.UsersAPI)
		},
	})
	return cmd
}

func redact(cfg config.Config) config.Config {
	if cfg.API.Key != "" {
		cfg.API.Key = "********"
	}
	return cfg
}
