package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gartstein/holdings/internal/holdings/models"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useConfig points the -config flag at a fresh file for the duration of the test.
func useConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body = strings.ReplaceAll(body, "$DIR", dir)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	previous := *configPath
	*configPath = path
	t.Cleanup(func() { *configPath = previous })
	return dir
}

func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cmd.Execute(context.Background(), fs)
}

func TestPlansCmd(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, subcommands.ExitSuccess, run(t, &plansCmd{out: &out}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[1], "2months")
	assert.Contains(t, lines[1], "₹3,000.00")
	assert.Contains(t, lines[5], "1 Year")
}

func TestServicesCmd(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, subcommands.ExitSuccess, run(t, &servicesCmd{out: &out}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(models.CoreServices()))
	assert.Equal(t, " 1. Stock Market Advisory", lines[0])
}

func TestIntentCmd_Plan(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, subcommands.ExitSuccess, run(t, &intentCmd{out: &out}, "-plan", "4months"))
	assert.Contains(t, out.String(), "am=5000")
	assert.Contains(t, out.String(), "tn=4%20Months%20Consultancy%20Plan")

	assert.Equal(t, subcommands.ExitUsageError, run(t, &intentCmd{out: &out}, "-plan", "3months"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &intentCmd{out: &out}, "-company", "nope"))
}

func TestListAndIntent_FromSQLite(t *testing.T) {
	useConfig(t, "STORE_DRIVER: sqlite\nSQLITE_PATH: $DIR/holdings.db\n")

	ctx := context.Background()
	a, err := openApp(ctx, false)
	require.NoError(t, err)
	acme, err := a.repo.Create(ctx, models.Draft{
		Name:            "Acme Capital",
		Services:        []string{"Wealth Management"},
		ConsultancyPlan: models.PlanOneYear,
	})
	require.NoError(t, err)
	_, err = a.repo.Create(ctx, models.Draft{Name: "Bluechip", Services: []string{"Stock Market Advisory"}})
	require.NoError(t, err)
	_, err = a.repo.ToggleFavorite(ctx, acme.ID)
	require.NoError(t, err)
	a.Close()

	var out bytes.Buffer
	require.Equal(t, subcommands.ExitSuccess, run(t, &listCmd{out: &out}))
	assert.Contains(t, out.String(), "Acme Capital")
	assert.Contains(t, out.String(), "Bluechip")

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &listCmd{out: &out}, "-q", "STOCK"))
	assert.NotContains(t, out.String(), "Acme Capital")
	assert.Contains(t, out.String(), "Bluechip")

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &listCmd{out: &out}, "-saved"))
	assert.Contains(t, out.String(), "Acme Capital")
	assert.NotContains(t, out.String(), "Bluechip")

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &intentCmd{out: &out}, "-company", acme.ID.String()))
	assert.Contains(t, out.String(), "am=12000")
	assert.Contains(t, out.String(), "tn=Acme%20Capital%20-%201%20Year%20Plan")
}

func TestOpenApp_BadConfig(t *testing.T) {
	useConfig(t, "STORE_DRIVER: redis\n")
	_, err := openApp(context.Background(), false)
	assert.Error(t, err)

	var out bytes.Buffer
	assert.Equal(t, subcommands.ExitFailure, run(t, &listCmd{out: &out}))
}

func TestOpenApp_Memory(t *testing.T) {
	useConfig(t, "STORE_DRIVER: memory\n")
	a, err := openApp(context.Background(), true)
	require.NoError(t, err)
	defer a.Close()

	assert.Empty(t, a.repo.List())
	assert.NoError(t, a.substrate.Ping(context.Background()))
}

func TestWatchCmd_RequiresFeed(t *testing.T) {
	useConfig(t, "STORE_DRIVER: memory\nKAFKA_ENABLED: false\n")
	var out bytes.Buffer
	assert.Equal(t, subcommands.ExitFailure, run(t, &watchCmd{out: &out}))
}
