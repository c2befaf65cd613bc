package termconsole

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "history")
	hf, err := newHistoryFile(path)
	require.NoError(t, err)

	entries, err := hf.load()
	require.NoError(t, err)
	assert.Empty(t, entries, "a missing file is an empty history")

	require.NoError(t, hf.save([]string{"newest", "  ", "middle", "oldest"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "oldest\nmiddle\nnewest\n", string(data))

	entries, err = hf.load()
	require.NoError(t, err)
	assert.Equal(t, []string{"newest", "middle", "oldest"}, entries)
}

func TestHistoryFileLoadSkipsBlankLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte("one\r\n\n   \ntwo\n"), 0600))

	hf, err := newHistoryFile(path)
	require.NoError(t, err)
	entries, err := hf.load()
	require.NoError(t, err)

	assert.Equal(t, []string{"two", "one"}, entries)
}

func TestHistoryFileSaveReplacesContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "history")
	hf, err := newHistoryFile(path)
	require.NoError(t, err)

	require.NoError(t, hf.save([]string{"a", "b", "c"}))
	require.NoError(t, hf.save([]string{"z"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "z\n", string(data))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1, "no temporary files are left behind")
}

func TestExpandHistoryPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "empty", path: "", wantErr: true},
		{name: "absolute", path: "/tmp/history", want: "/tmp/history"},
		{name: "home", path: "~", want: home},
		{name: "under home", path: "~/.app/history", want: filepath.Join(home, ".app", "history")},
		{name: "relative", path: "data/history", want: filepath.Join(cwd, "data", "history")},
		{name: "tilde user is relative", path: "~bob/history", want: filepath.Join(cwd, "~bob", "history")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandHistoryPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultHistoryFile(t *testing.T) {
	t.Run("XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		assert.Equal(t, filepath.Join("/custom/config", "termconsole", "history"), DefaultHistoryFile())
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "termconsole", "history"), DefaultHistoryFile())
	})
}
