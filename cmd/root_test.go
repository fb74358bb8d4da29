package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"duet/config"
	"duet/model"
	"duet/provider"
	"duet/provider/testutil"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useBackends replaces backend construction for the duration of a test.
func useBackends(t *testing.T, backends map[provider.Family]model.Backend) {
	t.Helper()
	orig := newBackends
	newBackends = func(*config.Config, logrus.FieldLogger) (map[provider.Family]model.Backend, error) {
		return backends, nil
	}
	t.Cleanup(func() { newBackends = orig })
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := NewRootCmd()
	root.SetArgs(args)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func transcripts(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "conversation_*.txt"))
	require.NoError(t, err)
	return matches
}

func TestRootCommandFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "version flag", args: []string{"--version"}},
		{name: "help flag", args: []string{"--help"}},
		{name: "positional args rejected", args: []string{"extra"}, wantErr: true},
		{name: "unknown subcommand flag", args: []string{"models", "--bogus"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useBackends(t, nil)
			_, _, err := execute(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunZeroExchangesWritesSeed(t *testing.T) {
	useBackends(t, map[provider.Family]model.Backend{})
	dir := t.TempDir()

	stdout, _, err := execute(t, "--model-a", "claude-x", "--model-b", "gpt-y", "-n", "0", "--transcript-dir", dir)
	require.NoError(t, err)

	files := transcripts(t, dir)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, len(config.DefaultSeed()), strings.Count(string(data), "<User>")+strings.Count(string(data), "<Assistant>"))
	assert.Contains(t, stdout, "Conversation finished")
}

func TestRunOneExchange(t *testing.T) {
	if testing.Short() {
		t.Skip("paces two turns")
	}

	claude := testutil.NewMockBackend("from claude")
	gpt := testutil.NewMockBackend("from gpt")
	useBackends(t, map[provider.Family]model.Backend{
		provider.FamilyAnthropic: claude,
		provider.FamilyOpenAI:    gpt,
	})

	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.toml")
	require.NoError(t, os.WriteFile(seed, []byte("[[messages]]\nrole = \"user\"\ncontent = \"hi\"\n"), 0600))

	stdout, _, err := execute(t, "--model-a", "claude-x", "--model-b", "gpt-y", "-n", "1", "--seed", seed, "--transcript-dir", dir)
	require.NoError(t, err)

	files := transcripts(t, dir)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, "<User>\nhi\n\n<claude-x>\nfrom claude\n\n<gpt-y>\nfrom gpt\n\n", string(data))

	require.Equal(t, 1, gpt.Calls())
	assert.Equal(t, []model.Message{model.UserMessage("from claude")}, gpt.Requests()[0].Messages)
	assert.Equal(t, "gpt-y", gpt.Requests()[0].Model)
	assert.Contains(t, stdout, "from gpt")
}

func TestRunUnsupportedModel(t *testing.T) {
	useBackends(t, map[provider.Family]model.Backend{})
	dir := t.TempDir()

	_, _, err := execute(t, "--model-a", "llama-x", "--model-b", "gpt-y", "-n", "1", "--transcript-dir", dir)

	var unsupported *provider.UnsupportedModelError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "llama-x", unsupported.ModelID)
	assert.Empty(t, transcripts(t, dir), "no transcript for a run that cannot start")
}

func TestRunMissingBackend(t *testing.T) {
	useBackends(t, map[provider.Family]model.Backend{})
	dir := t.TempDir()

	_, stderr, err := execute(t, "--model-a", "claude-x", "--model-b", "gpt-y", "-n", "1", "--transcript-dir", dir)

	var unavailable *provider.BackendUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, provider.FamilyAnthropic, unavailable.Family)
	assert.Contains(t, stderr, "Partial transcript kept at")
	assert.Len(t, transcripts(t, dir), 1)
}

func TestRunInvalidConfig(t *testing.T) {
	useBackends(t, nil)

	_, _, err := execute(t, "-n", "-1")
	assert.ErrorContains(t, err, "invalid configuration")

	_, _, err = execute(t, "--model-b", "")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")

	stdout, _, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, path)
	assert.True(t, config.FileExists(path))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultModelA, cfg.ModelA)
}

func TestModelsCommand(t *testing.T) {
	useBackends(t, map[provider.Family]model.Backend{
		provider.FamilyOllama: testutil.NewMockBackend(),
	})

	stdout, _, err := execute(t, "models")
	require.NoError(t, err)

	for _, f := range provider.Families() {
		assert.Contains(t, stdout, f.DisplayName())
	}
	assert.Contains(t, stdout, "ollama/")
	assert.Contains(t, stdout, "not configured")
}

func TestModelsCommandPing(t *testing.T) {
	failing := testutil.NewMockBackend()
	failing.PingFunc = func(ctx context.Context) error { return errors.New("refused") }

	useBackends(t, map[provider.Family]model.Backend{
		provider.FamilyOllama: testutil.NewMockBackend(),
		provider.FamilyOpenAI: failing,
	})

	stdout, _, err := execute(t, "models", "--ping")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ok (")
	assert.Contains(t, stdout, "refused")
}
