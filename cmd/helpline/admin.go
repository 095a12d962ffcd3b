// ABOUTME: Admin subcommands: ticket and user lists and the reports summary
// ABOUTME: Only managers may run them

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/2389/helpline/internal/admin"
)

func cmdAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: admin needs a subcommand (tickets, users, reports)", errUsage)
	}

	var (
		common commonFlags
		origin string
	)
	fs := pflag.NewFlagSet("admin "+args[0], pflag.ContinueOnError)
	common.register(fs)
	if args[0] == "tickets" || args[0] == "users" {
		fs.StringVar(&origin, "origin", "", "only list entries from this origin")
	}
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	a, err := newApp(ctx, common, false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := admin.RequireManager(a.session.User()); err != nil {
		return fmt.Errorf("%w (sign in with a manager account)", err)
	}

	views := admin.New(a.client.Tickets, a.client.Users, a.logger.With("component", "admin"))
	switch args[0] {
	case "tickets":
		return adminTickets(ctx, views, origin)
	case "users":
		return adminUsers(ctx, views, origin)
	case "reports":
		return adminReports()
	default:
		return fmt.Errorf("%w: unknown admin subcommand %q", errUsage, args[0])
	}
}

func adminTickets(ctx context.Context, views *admin.Views, origin string) error {
	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)

	tickets := views.Tickets(ctx, origin)
	cyan.Println("Admin • Tickets")
	gray.Printf("Filter origin: %s (%s)\n", orDash(origin), admin.TicketOriginHint)
	fmt.Println(admin.CountLabel(len(tickets), "tickets"))
	if len(tickets) == 0 {
		return nil
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY • PRIORITY\tORIGIN")
	for _, t := range tickets {
		row := admin.NewTicketRow(t)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", orDash(row.Key), row.Title, row.Meta, row.Origin)
	}
	return w.Flush()
}

func adminUsers(ctx context.Context, views *admin.Views, origin string) error {
	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)

	users := views.Users(ctx, origin)
	cyan.Println("Admin • Users")
	gray.Printf("Filter origin: %s (%s)\n", orDash(origin), admin.UserOriginHint)
	fmt.Println(admin.CountLabel(len(users), "users"))
	if len(users) == 0 {
		return nil
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tORIGIN")
	for _, u := range users {
		row := admin.NewUserRow(u)
		fmt.Fprintf(w, "%s\t%s\t%s\n", orDash(row.Key), row.Name, row.Origin)
	}
	return w.Flush()
}

func adminReports() error {
	r := admin.Report()
	color.New(color.FgCyan).Println(r.Title)
	fmt.Println(r.Summary)
	color.New(color.FgHiBlack).Println(r.Note)
	return nil
}
