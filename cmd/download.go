/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kbrick/rcx/pkg/rcximage"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download chunkFile programNumber",
	Short: "Download a compiled task chunk and run it as a numbered program",
	Long: `Download syncs with the target, stops any running program, and
sends chunkFile as task 0 of the numbered program (1-based; 0 leaves the
currently selected program alone). On a Spybotics target the chunk is
sent as a firmware-style blob instead of a task chunk.`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		programNumber, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("program number: %w", err)
		}

		img, err := rcximage.LoadTaskImage(args[0])
		if err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}

		l, err := openLink()
		if err != nil {
			return err
		}
		defer l.Close()

		if err := l.DownloadProgram(img, programNumber); err != nil {
			return fmt.Errorf("download: %w", err)
		}
		fmt.Printf("downloaded %s as program %d (%d bytes)\n", args[0], programNumber, img.Size())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}
