// ABOUTME: Interactive prompts for credentials
// ABOUTME: Passwords are read without echo when stdin is a terminal

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers from in and writes questions to out. fd is the
// descriptor checked for a terminal before reading secrets.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func newStdinPrompter() *prompter {
	return &prompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
		fd:  int(os.Stdin.Fd()),
	}
}

// Line asks for a value, returning current unchanged when it is already set.
func (p *prompter) Line(label, current string) (string, error) {
	if current != "" {
		return current, nil
	}
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// Secret asks for a value without echo on terminals.
func (p *prompter) Secret(label string) (string, error) {
	if !term.IsTerminal(p.fd) {
		return p.Line(label, "")
	}
	fmt.Fprintf(p.out, "%s: ", label)
	secret, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}
	return string(secret), nil
}
