// ABOUTME: Entry point for the helpline terminal client
// ABOUTME: Dispatches chat, faq, session, and admin subcommands

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Version is set at build time.
var version = "dev"

const banner = `
 _          _       _ _
| |__   ___| |_ __ | (_)_ __   ___
| '_ \ / _ \ | '_ \| | | '_ \ / _ \
| | | |  __/ | |_) | | | | | |  __/
|_| |_|\___|_| .__/|_|_|_| |_|\___|
             |_|
`

// errUsage marks errors that should print usage after the message.
var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// A missing .env is normal.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "login":
		err = cmdLogin(ctx, args)
	case "register":
		err = cmdRegister(ctx, args)
	case "logout":
		err = cmdLogout(ctx, args)
	case "whoami":
		err = cmdWhoami(ctx, args)
	case "status":
		err = cmdStatus(ctx, args)
	case "chat":
		err = cmdChat(ctx, args)
	case "faq":
		err = cmdFAQ(ctx, args)
	case "admin":
		err = cmdAdmin(ctx, args)
	case "version", "--version":
		fmt.Printf("helpline %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		color.Red("Error: %v\n", err)
		if errors.Is(err, errUsage) {
			printUsage()
		}
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: helpline <command> [flags]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  login                        Sign in with e-mail and password")
	fmt.Println("  register                     Create an account and sign in")
	fmt.Println("  logout                       Forget the stored session")
	fmt.Println("  whoami                       Show the signed-in user")
	fmt.Println("  status                       Show configuration and session status")
	fmt.Println("  chat                         Open the support chat")
	fmt.Println("  chat --message TEXT          Send one message (add --category C to pick one)")
	fmt.Println("  chat --reset                 Clear the saved conversation")
	fmt.Println("  faq                          List FAQ articles")
	fmt.Println("  faq --search Q --category C  Filter FAQ articles")
	fmt.Println("  faq --popular                Show the most helpful articles")
	fmt.Println("  faq --show ID                Print one article")
	fmt.Println("  faq --source faq             Read the /faq endpoints instead of /articles")
	fmt.Println("  faq --feedback ID --helpful  Vote on an article (or --not-helpful)")
	fmt.Println("  admin tickets [--origin O]   List tickets (managers)")
	fmt.Println("  admin users [--origin O]     List users (managers)")
	fmt.Println("  admin reports                Show the reports summary (managers)")
	fmt.Println("  version                      Print the version")
	fmt.Println("  help                         Show this help")
	fmt.Println()
	yellow.Println("Global flags:")
	fmt.Println("  --config PATH                Config file (default: $XDG_CONFIG_HOME/helpline/client.yaml)")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  HELPLINE_CONFIG              Config file path")
	fmt.Println("  HELPLINE_API_BASE            Backend base URL")
	fmt.Println("  HELPLINE_ASSISTANT_BASE      Assistant base URL (default: backend base URL)")
	fmt.Println("  HELPLINE_DATA_DIR            Directory for local state")
	fmt.Println()
	yellow.Println("Examples:")
	fmt.Println("  export HELPLINE_API_BASE=\"https://helpdesk.example.com/api\"")
	fmt.Println("  helpline login --email ana@example.com")
	fmt.Println("  helpline chat")
	fmt.Println("  helpline faq --search vpn")
	fmt.Println()
}
