// ABOUTME: Session subcommands: login, register, logout, whoami, and status
// ABOUTME: Credentials are prompted for when not given as flags

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/render"
)

// registerOrigin tags accounts created from this client.
const registerOrigin = "cli"

func cmdLogin(ctx context.Context, args []string) error {
	var (
		common commonFlags
		email  string
	)
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	common.register(fs)
	fs.StringVar(&email, "email", "", "account e-mail")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, common, false)
	if err != nil {
		return err
	}
	defer a.Close()

	p := newStdinPrompter()
	if email, err = p.Line("E-mail", email); err != nil {
		return err
	}
	password, err := p.Secret("Senha")
	if err != nil {
		return err
	}

	res := a.session.Login(ctx, email, password)
	if !res.Success {
		return errors.New(res.Error)
	}
	green := color.New(color.FgGreen)
	green.Printf("✓ Signed in as %s\n", displayUser(a.session.User()))
	return nil
}

func cmdRegister(ctx context.Context, args []string) error {
	var (
		common commonFlags
		in     api.RegisterInput
	)
	fs := pflag.NewFlagSet("register", pflag.ContinueOnError)
	common.register(fs)
	fs.StringVar(&in.Name, "name", "", "full name")
	fs.StringVar(&in.Email, "email", "", "account e-mail")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, common, false)
	if err != nil {
		return err
	}
	defer a.Close()

	p := newStdinPrompter()
	if in.Name, err = p.Line("Nome", in.Name); err != nil {
		return err
	}
	if in.Email, err = p.Line("E-mail", in.Email); err != nil {
		return err
	}
	if in.Password, err = p.Secret("Senha"); err != nil {
		return err
	}
	in.Origin = registerOrigin

	res := a.session.Register(ctx, in)
	if !res.Success {
		return errors.New(res.Error)
	}
	green := color.New(color.FgGreen)
	green.Printf("✓ Account created for %s\n", displayUser(a.session.User()))
	return nil
}

func cmdLogout(ctx context.Context, args []string) error {
	var common commonFlags
	fs := pflag.NewFlagSet("logout", pflag.ContinueOnError)
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, common, false)
	if err != nil {
		return err
	}
	defer a.Close()

	a.session.Logout(ctx)
	color.New(color.FgGreen).Println("✓ Signed out")
	return nil
}

func cmdWhoami(ctx context.Context, args []string) error {
	var common commonFlags
	fs := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, common, false)
	if err != nil {
		return err
	}
	defer a.Close()

	user := a.session.User()
	if !a.session.IsAuthenticated() {
		color.Yellow("Not signed in. Run: helpline login\n")
		return nil
	}

	cyan := color.New(color.FgCyan)
	cyan.Println("Signed in")
	fmt.Printf("  Name:    %s\n", displayUser(user))
	if user != nil {
		fmt.Printf("  E-mail:  %s\n", orDash(user.Email))
		fmt.Printf("  Role:    %s\n", orDash(user.Role))
		fmt.Printf("  Origin:  %s\n", orDash(user.Origin))
	}
	return nil
}

func cmdStatus(ctx context.Context, args []string) error {
	var common commonFlags
	fs := pflag.NewFlagSet("status", pflag.ContinueOnError)
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, common, false)
	if err != nil {
		return err
	}
	defer a.Close()

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Printf("    version: %s\n\n", version)

	green.Print("  Config:     ")
	fmt.Println(a.configPath)
	green.Print("  Backend:    ")
	fmt.Println(orDash(a.cfg.API.BaseURL))
	green.Print("  Assistant:  ")
	fmt.Printf("%s (%s)\n", orDash(a.cfg.Assistant.BaseURL), a.cfg.AssistantMode())
	green.Print("  State:      ")
	fmt.Println(a.cfg.Storage.Path)

	if !a.session.IsAuthenticated() {
		yellow.Print("  Session:    ")
		fmt.Println("signed out")
		return nil
	}
	green.Print("  Session:    ")
	fmt.Printf("%s", displayUser(a.session.User()))
	if a.session.IsManager() {
		fmt.Print(" [manager]")
	}
	fmt.Println()
	if exp, ok := a.session.TokenExpiry(); ok {
		green.Print("  Expires:    ")
		if time.Until(exp) <= 0 {
			color.Red("%s (expired)\n", exp.Format(time.RFC3339))
		} else {
			fmt.Printf("%s (in %s)\n", exp.Format(time.RFC3339), time.Until(exp).Round(time.Minute))
		}
	}

	fmt.Println()
	yellow.Println("  Menu:")
	for _, line := range strings.Split(render.SidebarView(a.session.IsManager(), "chat"), "\n") {
		fmt.Println("    " + line)
	}
	return nil
}

func displayUser(u *api.User) string {
	if u == nil || u.DisplayName() == "" {
		return "Usuário"
	}
	return u.DisplayName()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
