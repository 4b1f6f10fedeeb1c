package api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAuth = `reddit-app:
  client-id: abc123
  client-secret: s3cr3t
  useragent: script by someone 0.1
user:
  username: someone
  password: hunter2
`

func TestLoadCredentialsFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "reddit-auth.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleAuth), 0o600))

	creds, err := LoadCredentials(path, "")
	require.NoError(t, err)
	assert.Equal(t, Credentials{
		ClientID:     "abc123",
		ClientSecret: "s3cr3t",
		UserAgent:    "script by someone 0.1",
		Username:     "someone",
		Password:     "hunter2",
	}, creds)
	assert.False(t, creds.Anonymous())
	assert.NoError(t, creds.Validate())
}

func TestLoadCredentialsEnvFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "reddit-auth.yaml")
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(sampleAuth), 0o600))
	require.NoError(t, os.WriteFile(envFile, []byte("REDDIT_USER_AGENT=from dotenv\n"), 0o600))

	creds, err := LoadCredentials(path, envFile)
	require.NoError(t, err)
	assert.Equal(t, "from dotenv", creds.UserAgent)
	assert.Equal(t, "abc123", creds.ClientID)
}

func TestLoadCredentialsMissingFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	creds, err := LoadCredentials(filepath.Join(dir, "none.yaml"), filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.NoError(t, creds.Validate())
}

func TestLoadCredentialsInvalidYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "reddit-auth.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reddit-app: [oops"), 0o600))

	_, err := LoadCredentials(path, "")
	assert.Error(t, err)
}

func TestCredentialsValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		creds Credentials
		ok    bool
	}{
		{"anonymous", Credentials{}, true},
		{"read only app", Credentials{ClientID: "id", UserAgent: "ua"}, true},
		{"app without agent", Credentials{ClientID: "id"}, false},
		{"secret without id", Credentials{ClientSecret: "s"}, false},
		{"user without password", Credentials{ClientID: "id", UserAgent: "ua", Username: "u"}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.creds.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrMissingCredentials)
			}
		})
	}
}
