package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/gartstein/holdings/internal/holdings/controller"
	"github.com/gartstein/holdings/internal/holdings/models"
	"github.com/google/subcommands"
)

type plansCmd struct {
	out io.Writer
}

func (*plansCmd) Name() string     { return "plans" }
func (*plansCmd) Synopsis() string { return "print the consultancy plan catalog" }
func (*plansCmd) Usage() string {
	return `holdings plans

  Lists every plan key with its duration and price.
`
}
func (*plansCmd) SetFlags(*flag.FlagSet) {}

func (p *plansCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	w := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tDURATION\tPRICE")
	for _, plan := range models.Plans() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", plan.Key, plan.Duration, plan.Display())
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type servicesCmd struct {
	out io.Writer
}

func (*servicesCmd) Name() string     { return "services" }
func (*servicesCmd) Synopsis() string { return "print the core services offered" }
func (*servicesCmd) Usage() string {
	return `holdings services
`
}
func (*servicesCmd) SetFlags(*flag.FlagSet) {}

func (s *servicesCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	for i, name := range models.CoreServices() {
		fmt.Fprintf(s.out, "%2d. %s\n", i+1, name)
	}
	return subcommands.ExitSuccess
}

type listCmd struct {
	out   io.Writer
	query string
	saved bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "print stored companies" }
func (*listCmd) Usage() string {
	return `holdings [-config <path>] list [-q <query>] [-saved]

  Prints the companies in the configured store in insertion order. -q keeps
  those whose name or any service contains the query, ignoring case. -saved
  prints favorites only and ignores -q.
`
}

func (l *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&l.query, "q", "", "Case-insensitive search over name and services.")
	f.BoolVar(&l.saved, "saved", false, "Only list favorites.")
}

func (l *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	var records []models.Company
	if l.saved {
		records = a.repo.Saved()
	} else {
		records = controller.Filter(a.repo.List(), l.query)
	}

	w := tabwriter.NewWriter(l.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPLAN\tSAVED\tSERVICES")
	for _, c := range records {
		saved := ""
		if a.repo.IsFavorite(c.ID) {
			saved = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", c.ID, c.Name, c.Plan().Duration, saved, len(c.Services))
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
