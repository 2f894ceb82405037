package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*kong.Context, *CLI) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("cardtrick"),
		kong.Vars{
			"version":    "test",
			"strategies": strings.Join(strategyNames(), ","),
		},
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return ctx, &cli
}

func missingConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cardtrick.hcl")
}

func TestEncodeDecodeCommands(t *testing.T) {
	ctx, cli := parse(t, "--config", missingConfig(t), "--no-color", "encode", "3c", "4c", "Tc", "5s", "Ac")
	assert.Equal(t, "gap", cli.Encode.Strategy)
	require.NoError(t, ctx.Run(&cli.Globals))

	ctx, cli = parse(t, "-c", missingConfig(t), "decode", "-s", "suit", "5cTcAcTs")
	assert.Equal(t, "suit", cli.Decode.Strategy)
	require.NoError(t, ctx.Run(&cli.Globals))
}

func TestDecodeRejectsForeignSelection(t *testing.T) {
	ctx, cli := parse(t, "-c", missingConfig(t), "decode", "2c", "3c", "4c", "5c")
	assert.Error(t, ctx.Run(&cli.Globals))
}

func TestUnknownStrategyFlag(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test", "strategies": strings.Join(strategyNames(), ",")})
	require.NoError(t, err)
	_, err = parser.Parse([]string{"encode", "-s", "mirrors", "2c", "3c", "4c", "5c", "6c"})
	assert.Error(t, err)
}

func TestVerifySampleWritesReport(t *testing.T) {
	report := filepath.Join(t.TempDir(), "report.json")
	ctx, cli := parse(t, "-c", missingConfig(t), "-l", "error", "verify", "--all", "-n", "2000", "--seed", "7", "-p", "none", "-o", report)
	require.NoError(t, ctx.Run(&cli.Globals))

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	for _, name := range strategyNames() {
		assert.Contains(t, string(data), `"strategy": "`+name+`"`)
	}
	assert.Contains(t, string(data), `"seed": 7`)
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardtrick.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`verify { progress = "fireworks" }`), 0o644))

	ctx, cli := parse(t, "-c", path, "strategies")
	assert.ErrorContains(t, ctx.Run(&cli.Globals), "invalid configuration")
}
