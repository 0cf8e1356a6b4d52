package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/firescrape/cmd/firescrape"
	"github.com/fwojciec/firescrape/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"scrape", "crawl", "search", "map", "batch", "shell"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--help"}, strings.NewReader(""), stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Usage:")
	assert.Contains(t, stdout.String(), "firescrape")
}

func TestMain_Run_InvalidFormat(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), []string{"scrape", "https://example.com", "--format", "pdf"},
		strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})

	assert.Error(t, err)
}

func TestMain_Run_InvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "firescrape.toml")
	require.NoError(t, os.WriteFile(path, []byte("[fetch]\nextractor = \"magic\"\n"), 0644))

	m := main.NewMain()
	m.ConfigPath = path
	err := m.Run(context.Background(), []string{"map", "https://example.com"}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "magic")
}

func TestMain_Run_ShellExitsOnEndOfInput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "firescrape.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	stdout := &bytes.Buffer{}
	m := main.NewMain()
	m.ConfigPath = path
	defer m.Close()

	err := m.Run(context.Background(), nil, strings.NewReader("7\n"), stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "1. Scrape a page")
	assert.Contains(t, stdout.String(), "checkpoint")
}

func TestMain_Run_CheckpointFollowsOutputDir(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	path := filepath.Join(tmp, "firescrape.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))
	results := filepath.Join(tmp, "results")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stdout := &bytes.Buffer{}
	m := main.NewMain()
	m.ConfigPath = path
	defer m.Close()

	err := m.Run(ctx, []string{"batch", "--name", "demo", "-d", results, "http://127.0.0.1:1/a"}, strings.NewReader(""), stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(results, fs.CheckpointFilename("demo")))
	assert.NoFileExists(t, fs.CheckpointFilename("demo"))
	assert.Contains(t, stdout.String(), "firescrape batch --name demo -d "+results+" -- http://127.0.0.1:1/a")
}
