package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gartstein/holdings/internal/holdings/models"
	"github.com/gartstein/holdings/internal/holdings/payment"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type intentCmd struct {
	out     io.Writer
	plan    string
	company string
}

func (*intentCmd) Name() string     { return "intent" }
func (*intentCmd) Synopsis() string { return "print the UPI payment link for a plan" }
func (*intentCmd) Usage() string {
	return `holdings [-config <path>] intent -plan <key> | -company <id>

  Prints the deep link paying for a plan. With -company the stored company's
  own plan is used and -plan is ignored.
`
}

func (c *intentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.plan, "plan", string(models.DefaultPlan), "Plan key (2months, 4months, 6months, 8months, 1year).")
	f.StringVar(&c.company, "company", "", "Company id to pay for.")
}

func (c *intentCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.company == "" {
		key, err := models.ParsePlanKey(c.plan)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		fmt.Fprintln(c.out, payment.BuildIntent(key.Plan(), nil))
		return subcommands.ExitSuccess
	}

	id, err := uuid.Parse(c.company)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid company id: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	company, err := a.repo.Get(id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(c.out, payment.BuildIntent(company.Plan(), &company))
	return subcommands.ExitSuccess
}
