package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/eshaanmandal/tempgrid/internal/config"
	"github.com/eshaanmandal/tempgrid/internal/utils"
	"github.com/spf13/cobra"
)

var (
	initForce bool
	initInput string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default tempgrid config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			p, err := cfgpkg.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		path, err := utils.ExpandHome(path)
		if err != nil {
			return err
		}
		// Refuse to overwrite an existing config.
		if info, err := os.Stat(path); err == nil {
			if info.IsDir() {
				return fmt.Errorf("%s is a directory", path)
			}
			if !initForce {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat config: %w", err)
		}
		c := cfgpkg.Defaults()
		if initInput != "" {
			c.InputPath = initInput
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Config initialized: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	initCmd.Flags().StringVarP(&initInput, "input", "i", "", "default input table to record in the config")
}
