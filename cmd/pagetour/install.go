package main

import (
	"github.com/spf13/cobra"

	"github.com/networkteam/pagetour/browser"
)

func newInstallCmd() *cobra.Command {
	var verbose bool

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Download the playwright driver and Chromium",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := browser.Install(verbose); err != nil {
				return err
			}
			printf(cmd, "Browsers installed\n")
			return nil
		},
	}

	installCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show driver output")

	return installCmd
}
