/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kbrick/rcx/pkg/console"
)

// consoleCmd represents the console command
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open an interactive console against the target",
	Long: `Console opens the link and drops into a small REPL for issuing
ad hoc commands (sync, ping, version, battery, value, sound, stop) by
hand. Type "help" at the prompt for the full list.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := openLink()
		if err != nil {
			return err
		}
		defer l.Close()

		return console.Run(l)
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
