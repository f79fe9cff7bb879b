package console

// Command dispatch table for the interactive console, in the style of
// the teacher's pkg/host/handlers.go protocolCommand table: a flat list
// of (short name, long name, handler) tuples matched by prefix against
// the line the user typed.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kbrick/rcx/pkg/link"
	"github.com/kbrick/rcx/pkg/rcxcmd"
)

type consoleCommand struct {
	short   string
	long    string
	help    string
	handler commandHandler
}

type commandHandler func(l *link.Link, args []string) error

var commands []consoleCommand

func init() {
	commands = []consoleCommand{
		{"h", "help", "show this list", cmdHelp},
		{"sy", "sync", "re-run the sync handshake", cmdSync},
		{"pi", "ping", "send a bare Ping", cmdPing},
		{"ve", "version", "print ROM/RAM version", cmdVersion},
		{"ba", "battery", "print battery level in mV", cmdBattery},
		{"va", "value type index", "read one memory-mapped value", cmdValue},
		{"so", "sound index", "play a built-in sound effect", cmdSound},
		{"st", "stop", "stop all tasks and subroutines", cmdStop},
		{"q", "quit", "leave the console", cmdQuit},
	}
}

var errQuit = fmt.Errorf("console: quit requested")

// dispatch matches the line's first word against each command's short
// name or the first word of its long entry (the rest of the long entry is
// usage text shown by help) and invokes the handler with the remaining
// words. Unmatched lines are reported and otherwise ignored, matching the
// teacher's own console behavior.
func dispatch(l *link.Link, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	for _, c := range commands {
		name := strings.Fields(c.long)[0]
		if fields[0] == c.short || fields[0] == name {
			return c.handler(l, fields[1:])
		}
	}
	fmt.Printf("unknown command %q (try \"help\")\n", fields[0])
	return nil
}

func cmdHelp(l *link.Link, args []string) error {
	fmt.Printf("%-4s %-16s %s\n", "", "", "")
	for _, c := range commands {
		fmt.Printf("%-4s %-16s %s\n", c.short, c.long, c.help)
	}
	return nil
}

func cmdSync(l *link.Link, args []string) error {
	if err := l.Sync(); err != nil {
		return err
	}
	fmt.Println("synced")
	return nil
}

func cmdPing(l *link.Link, args []string) error {
	_, err := l.Send(rcxcmd.MakePing())
	return err
}

func cmdVersion(l *link.Link, args []string) error {
	rom, ram, err := l.GetVersion()
	if err != nil {
		return err
	}
	fmt.Printf("ROM %#08x  RAM %#08x\n", rom, ram)
	return nil
}

func cmdBattery(l *link.Link, args []string) error {
	mv, err := l.GetBatteryLevel()
	if err != nil {
		return err
	}
	fmt.Printf("%d mV\n", mv)
	return nil
}

func cmdValue(l *link.Link, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: value type index")
	}
	typ, err := strconv.ParseUint(args[0], 0, 8)
	if err != nil {
		return err
	}
	idx, err := strconv.ParseUint(args[1], 0, 8)
	if err != nil {
		return err
	}
	v, err := l.GetValue(link.Value{Type: byte(typ), Index: byte(idx)})
	if err != nil {
		return err
	}
	fmt.Printf("%d\n", v)
	return nil
}

func cmdSound(l *link.Link, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sound index")
	}
	idx, err := strconv.ParseUint(args[0], 0, 8)
	if err != nil {
		return err
	}
	_, err = l.Send(rcxcmd.MakePlaySound(byte(idx)))
	return err
}

func cmdStop(l *link.Link, args []string) error {
	_, err := l.Send(rcxcmd.MakeStopAll())
	return err
}

func cmdQuit(l *link.Link, args []string) error {
	return errQuit
}

// Run drives the console's read-eval-print loop against an already
// open Link until the user quits or stdin hits EOF.
func Run(l *link.Link) error {
	in := newInput("rcx> ")
	for {
		line := in.get()
		if line == "" {
			continue
		}
		if line == "EOF" {
			return nil
		}
		line = strings.TrimRight(line, "\n")
		if err := dispatch(l, line); err != nil {
			if err == errQuit {
				return nil
			}
			fmt.Printf("error: %v\n", err)
		}
	}
}
