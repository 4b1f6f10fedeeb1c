package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Credentials identify the application (and optionally a user) to reddit.
type Credentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Username     string
	Password     string
}

// credentialsFile is the layout of reddit-auth.yaml:
//
//	reddit-app:
//	  client-id: ...
//	  client-secret: ...
//	  useragent: ...
//	user:
//	  username: ...
//	  password: ...
type credentialsFile struct {
	App struct {
		ClientID     string `yaml:"client-id"`
		ClientSecret string `yaml:"client-secret"`
		UserAgent    string `yaml:"useragent"`
	} `yaml:"reddit-app"`
	User struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"user"`
}

// Environment variables that override the credentials file.
const (
	EnvClientID     = "REDDIT_CLIENT_ID"
	EnvClientSecret = "REDDIT_CLIENT_SECRET"
	EnvUserAgent    = "REDDIT_USER_AGENT"
	EnvUsername     = "REDDIT_USERNAME"
	EnvPassword     = "REDDIT_PASSWORD"
)

// LoadCredentials reads credentials from the YAML file at path, then from the
// dotenv file at envFile, then from the process environment; later sources win.
// Missing files are skipped, so the zero Credentials is a valid result.
func LoadCredentials(path, envFile string) (Credentials, error) {
	var creds Credentials

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return creds, fmt.Errorf("%w: couldn't read credentials(path=%s)", err, path)
		default:
			var f credentialsFile
			if err := yaml.Unmarshal(b, &f); err != nil {
				return creds, fmt.Errorf("%w: couldn't parse credentials(path=%s)", err, path)
			}
			creds = Credentials{
				ClientID:     f.App.ClientID,
				ClientSecret: f.App.ClientSecret,
				UserAgent:    f.App.UserAgent,
				Username:     f.User.Username,
				Password:     f.User.Password,
			}
		}
	}

	if envFile != "" {
		env, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return creds, fmt.Errorf("%w: couldn't read env file(path=%s)", err, envFile)
		default:
			creds.override(func(key string) string { return env[key] })
		}
	}

	creds.override(os.Getenv)

	return creds, nil
}

func (c *Credentials) override(lookup func(string) string) {
	set := func(dst *string, key string) {
		if v := lookup(key); v != "" {
			*dst = v
		}
	}
	set(&c.ClientID, EnvClientID)
	set(&c.ClientSecret, EnvClientSecret)
	set(&c.UserAgent, EnvUserAgent)
	set(&c.Username, EnvUsername)
	set(&c.Password, EnvPassword)
}

// Anonymous reports whether no application id is configured.
func (c Credentials) Anonymous() bool {
	return c.ClientID == ""
}

// Validate checks that configured credentials are usable.
func (c Credentials) Validate() error {
	if c.Anonymous() {
		if c.ClientSecret != "" || c.Username != "" || c.Password != "" {
			return fmt.Errorf("%w: client id is required", ErrMissingCredentials)
		}
		return nil
	}
	if c.UserAgent == "" {
		return fmt.Errorf("%w: user agent is required with a client id", ErrMissingCredentials)
	}
	if (c.Username == "") != (c.Password == "") {
		return fmt.Errorf("%w: username and password go together", ErrMissingCredentials)
	}
	return nil
}
