package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")
	require.NoError(t, os.WriteFile(keyFile, []byte("  from-file \n"), 0o600))
	emptyFile := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(emptyFile, []byte("\n"), 0o600))

	t.Setenv("STAFFMATCH_TEST_PRIMARY", "")
	t.Setenv("STAFFMATCH_TEST_SECONDARY", " from-env ")

	tests := []struct {
		name    string
		src     Source
		want    string
		wantErr bool
	}{
		{name: "file wins", src: Source{File: keyFile, Env: []string{"STAFFMATCH_TEST_SECONDARY"}, Value: "inline"}, want: "from-file"},
		{name: "env before value", src: Source{Env: []string{"STAFFMATCH_TEST_PRIMARY", "STAFFMATCH_TEST_SECONDARY"}, Value: "inline"}, want: "from-env"},
		{name: "inline value", src: Source{Env: []string{"STAFFMATCH_TEST_PRIMARY"}, Value: " inline "}, want: "inline"},
		{name: "empty file", src: Source{File: emptyFile, Value: "inline"}, wantErr: true},
		{name: "missing file", src: Source{File: filepath.Join(dir, "missing")}, wantErr: true},
		{name: "nothing configured", src: Source{Name: "gemini api key"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadNotConfigured(t *testing.T) {
	_, err := Load(Source{Name: "gemini api key"})
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Contains(t, err.Error(), "gemini api key")
}
