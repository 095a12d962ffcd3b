// ABOUTME: Chat subcommand: interactive TUI by default, one-shot with --message
// ABOUTME: One-shot mode prints the messages the turn added as bubbles

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/2389/helpline/internal/chat"
	"github.com/2389/helpline/internal/render"
)

const defaultWidth = 80

func cmdChat(ctx context.Context, args []string) error {
	var (
		common   commonFlags
		message  string
		category string
		reset    bool
	)
	fs := pflag.NewFlagSet("chat", pflag.ContinueOnError)
	common.register(fs)
	fs.StringVar(&message, "message", "", "send one message and print the replies")
	fs.StringVar(&category, "category", "", "triage category for --message")
	fs.BoolVar(&reset, "reset", false, "clear the saved conversation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	interactive := message == "" && !reset
	a, err := newApp(ctx, common, interactive)
	if err != nil {
		return err
	}
	defer a.Close()

	flow, err := a.newFlow(ctx)
	if err != nil {
		return err
	}

	if reset {
		if err := flow.Clear(ctx); err != nil {
			return err
		}
		color.New(color.FgGreen).Println("✓ Conversa apagada")
		if message == "" {
			return nil
		}
	}

	if message == "" {
		return runChatTUI(ctx, flow, a.session.User())
	}
	return chatOnce(ctx, flow, category, message)
}

// chatOnce runs a single turn, accepting consent and selecting the category
// first when needed.
func chatOnce(ctx context.Context, flow *chat.Flow, category, message string) error {
	before := len(flow.Snapshot().Messages)

	if err := flow.Accept(ctx); err != nil && !errors.Is(err, chat.ErrIgnored) {
		return err
	}
	if category != "" {
		if err := flow.SelectCategory(ctx, category); err != nil && !errors.Is(err, chat.ErrIgnored) {
			return err
		}
	}

	res, err := flow.SubmitMessage(ctx, message)
	if err != nil {
		return fmt.Errorf("sending message: %w", err)
	}

	width := terminalWidth()
	msgs := flow.Snapshot().Messages
	if before > len(msgs) {
		before = 0
	}
	for _, m := range msgs[before:] {
		fmt.Println(render.Bubble(m, width))
	}
	if res.Suppressed {
		color.New(color.FgHiBlack).Println("(resposta repetida omitida)")
	}
	return nil
}

// terminalWidth returns the stdout width, or 80 when stdout is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
