package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/handsomefox/imagemachine/api"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type AppArguments struct {
	Subreddit      string   `arg:"positional,required" help:"subreddit to download images from"`
	Sort           api.Sort `arg:"positional" default:"hot" help:"hot, new, rising, top-all, top-year, top-month, top-week, top-day or top-hour"`
	Limit          int      `arg:"-l,--limit" default:"50" help:"max posts to inspect per cycle"`
	Repeat         bool     `arg:"-r,--repeat" help:"keep polling the subreddit"`
	Wait           int      `arg:"-w,--wait" default:"60" help:"seconds to wait between cycles"`
	NSFW           bool     `arg:"--nsfw" help:"download posts marked NSFW"`
	SaveDirectory  string   `arg:"-d,--dir" default:"subreddit-images" help:"root directory for the per-subreddit folders"`
	AuthFile       string   `arg:"-a,--auth" default:"reddit-auth.yaml" help:"reddit credentials file"`
	EnvFile        string   `arg:"--env" default:".env" help:"dotenv file with REDDIT_* overrides"`
	Timeout        int      `arg:"-t,--timeout" default:"60" help:"seconds before a network request is abandoned"`
	VerboseLogging bool     `arg:"-v,--verbose" help:"enable debug logging"`
}

func (AppArguments) Description() string {
	return "Downloads images posted to a subreddit that link directly to i.redd.it or i.imgur.com."
}

// Config is the validated configuration of the poll loop.
type Config struct {
	Subreddit string
	Sort      api.Sort
	Limit     int
	Repeat    bool
	Wait      time.Duration
	NSFW      bool
	Directory string
	Timeout   time.Duration
}

// Config converts the command line into a Config. Call Validate on the result.
func (a *AppArguments) Config() *Config {
	return &Config{
		Subreddit: strings.ToLower(strings.TrimSpace(a.Subreddit)),
		Sort:      a.Sort,
		Limit:     a.Limit,
		Repeat:    a.Repeat,
		Wait:      time.Duration(a.Wait) * time.Second,
		NSFW:      a.NSFW,
		Directory: a.SaveDirectory,
		Timeout:   time.Duration(a.Timeout) * time.Second,
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Subreddit == "":
		return fmt.Errorf("%w: subreddit can not be empty", ErrInvalidConfig)
	case !api.ValidName(c.Subreddit):
		return fmt.Errorf("%w: subreddit %q is not a valid name", ErrInvalidConfig, c.Subreddit)
	case int(c.Sort) >= len(api.Sorts()):
		return fmt.Errorf("%w: unknown sort %s", ErrInvalidConfig, c.Sort)
	case c.Limit <= 0:
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidConfig, c.Limit)
	case c.Wait < 0:
		return fmt.Errorf("%w: wait can not be negative", ErrInvalidConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	case c.Directory == "":
		return fmt.Errorf("%w: directory can not be empty", ErrInvalidConfig)
	}
	return nil
}

// SubredditDir is where images of the configured subreddit are saved.
func (c *Config) SubredditDir() string {
	return filepath.Join(c.Directory, c.Subreddit)
}
