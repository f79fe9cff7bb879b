// Package console implements the Interactive Console (C13): a small
// REPL for exercising a Link's operations by hand from a terminal.
package console

// Nonblocking handler for standard input, with concessions for
// interactive terminal use. The reader goroutine blocks on stdin and
// hands lines to the main loop over a channel; the main loop polls it
// with a short timeout so it stays free to do other work (here, just
// redraw the prompt) between lines.

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/term"
)

type input struct {
	channel      chan string
	interactive  bool
	promptNeeded bool
	prompt       string
}

func newInput(prompt string) *input {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	in := &input{channel: make(chan string), interactive: interactive, promptNeeded: interactive, prompt: prompt}
	go in.reader()
	return in
}

func (in *input) promptIfTerminal() {
	if in.promptNeeded {
		fmt.Print(in.prompt)
		in.promptNeeded = false
	}
}

// reader consumes standard input and sends it to a channel the main
// loop selects on. EOF is reported in-band with a marker that can never
// collide with real input (it has no trailing newline).
func (in *input) reader() {
	r := bufio.NewReader(os.Stdin)
	for {
		s, err := r.ReadString('\n')
		if err != nil {
			in.channel <- "EOF"
			close(in.channel)
			if err != io.EOF {
				log.Printf("console: reading input: %v\n", err)
			}
			return
		}
		in.channel <- s
	}
}

func (in *input) get() string {
	in.promptIfTerminal()
	select {
	case s := <-in.channel:
		in.promptNeeded = in.interactive
		return s
	case <-time.After(50 * time.Millisecond):
		return ""
	}
}
