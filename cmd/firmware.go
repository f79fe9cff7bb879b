/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var fastFlag bool

// firmwareCmd represents the firmware command
var firmwareCmd = &cobra.Command{
	Use:   "firmware file startAddrHex",
	Short: "Transfer a firmware image to the target's RAM",
	Long: `Firmware erases any existing downloaded firmware, transfers file's
bytes starting at startAddrHex, and unlocks the target to run it.
With --fast, a bootstrap nub is uploaded first and the transfer runs at
the transport's negotiated high-speed mode; this requires a transport
that supports fast mode (the serial tower does, the TCP tunnel does not).`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		start, err := strconv.ParseInt(args[1], 16, 32)
		if err != nil {
			return fmt.Errorf("start address: %w", err)
		}

		l, err := openLink()
		if err != nil {
			return err
		}
		defer l.Close()

		if err := l.DownloadFirmware(data, int(start), fastFlag); err != nil {
			return fmt.Errorf("firmware transfer: %w", err)
		}
		fmt.Printf("transferred %d bytes to 0x%04x\n", len(data), start)
		return nil
	},
}

func init() {
	firmwareCmd.Flags().BoolVar(&fastFlag, "fast", false, "negotiate the transport's fast mode via a bootstrap nub")
	rootCmd.AddCommand(firmwareCmd)
}
