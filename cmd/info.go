/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Report the target's ROM/RAM version and battery level",

	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := openLink()
		if err != nil {
			return err
		}
		defer l.Close()

		rom, ram, err := l.GetVersion()
		if err != nil {
			fmt.Printf("version: error: %v\n", err)
		} else {
			fmt.Printf("ROM version: %#08x\nRAM version: %#08x\n", rom, ram)
		}

		if l.WasErrorFromMissingFirmware() {
			fmt.Println("note: target appears to be running ROM only (no firmware downloaded)")
		}

		mv, err := l.GetBatteryLevel()
		if err != nil {
			fmt.Printf("battery: error: %v\n", err)
		} else {
			fmt.Printf("battery: %d mV\n", mv)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
