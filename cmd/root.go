/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbrick/rcx/pkg/link"
)

var (
	portFlag    string
	targetFlag  string
	verboseFlag bool
	quietFlag   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rcx",
	Short: "Drive an RCX-family embedded controller over its link-layer protocol",
	Long: `rcx talks the RCX-family command/reply protocol to an RCX, RCX2,
Scout, CyberMaster, Swan, or Spybotics controller over a serial tower,
a USB tower, or a TCP-tunneled tower. It can sync with a target, report
its version and battery level, download a program, transfer new
firmware, or drop into an interactive console for ad hoc protocol
exercises.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once
// to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&portFlag, "port", "",
		"device URL (e.g. serial:/dev/ttyUSB0, usb:, tcp:host:port); defaults per RCX_PORT/device.conf")
	rootCmd.PersistentFlags().StringVar(&targetFlag, "target", "rcx2",
		"target kind: rcx, rcx2, scout, cm, swan, spybotics")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"log every command and reply")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false,
		"suppress the end-of-download confirmation sound")
}

// parseTarget maps the --target flag's value to a link.Target.
func parseTarget(s string) (link.Target, error) {
	switch s {
	case "rcx":
		return link.RCX, nil
	case "rcx2", "":
		return link.RCX2, nil
	case "scout":
		return link.Scout, nil
	case "cm", "cybermaster":
		return link.CM, nil
	case "swan":
		return link.Swan, nil
	case "spybotics":
		return link.Spybotics, nil
	default:
		return 0, fmt.Errorf("unknown target %q", s)
	}
}

// openLink resolves --target/--port/--verbose/--quiet into an opened Link.
// The caller must Close it.
func openLink() (*link.Link, error) {
	target, err := parseTarget(targetFlag)
	if err != nil {
		return nil, err
	}

	l := link.New(target)
	l.SetQuiet(quietFlag)
	if err := l.Open(portFlag, link.OpenOptions{VerboseMode: verboseFlag}); err != nil {
		return nil, fmt.Errorf("opening link: %w", err)
	}
	return l, nil
}
