package transcript

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duet/model"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "conversation_1700000000.txt", FileName(time.Unix(1700000000, 999)))
}

func TestWriterSeedAndAppend(t *testing.T) {
	dir := t.TempDir()
	startedAt := time.Unix(1712345678, 0)

	w, err := Open(dir, startedAt)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, filepath.Join(dir, "conversation_1712345678.txt"), w.Path())

	seed := []model.Message{
		model.UserMessage(`hello\nthere`),
		model.AssistantMessage("hi"),
	}
	require.NoError(t, w.WriteSeed(seed))
	require.NoError(t, w.Append("gpt-4", `one\ntwo`))
	require.NoError(t, w.Close())

	want := "<User>\nhello\nthere\n\n" +
		"<Assistant>\nhi\n\n" +
		"<gpt-4>\none\ntwo\n\n"
	assert.Equal(t, want, readFile(t, w.Path()))
	assert.Equal(t, 3, w.Blocks())
}

func TestWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "runs")

	w, err := Open(dir, time.Unix(1, 0))
	require.NoError(t, err)
	defer w.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriterAppendsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	startedAt := time.Unix(42, 0)

	first, err := Open(dir, startedAt)
	require.NoError(t, err)
	require.NoError(t, first.Append("a", "first"))
	require.NoError(t, first.Close())

	// Same-second runs share a file; the second writer must not truncate.
	second, err := Open(dir, startedAt)
	require.NoError(t, err)
	require.NoError(t, second.Append("b", "second"))
	require.NoError(t, second.Close())

	assert.Equal(t, "<a>\nfirst\n\n<b>\nsecond\n\n", readFile(t, second.Path()))
}

func TestWriterAppendAfterClose(t *testing.T) {
	w, err := Open(t.TempDir(), time.Unix(7, 0))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.Error(t, w.Append("x", "y"))
}

func TestWriterEmptySeed(t *testing.T) {
	w, err := Open(t.TempDir(), time.Unix(8, 0))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteSeed(nil))
	assert.Equal(t, 0, w.Blocks())
	assert.Equal(t, "", readFile(t, w.Path()))
}
