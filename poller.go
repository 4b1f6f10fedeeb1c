package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/handsomefox/imagemachine/api"
	"github.com/handsomefox/imagemachine/files"
	"github.com/handsomefox/imagemachine/media"
	"github.com/rs/zerolog/log"
)

// CycleStats counts what happened to the posts of one listing.
type CycleStats struct {
	Inspected       int
	Saved           int
	SkippedNSFW     int
	SkippedNotImage int
	SkippedUnnamed  int
	SkippedExisting int
}

func (s CycleStats) Skipped() int {
	return s.SkippedNSFW + s.SkippedNotImage + s.SkippedUnnamed + s.SkippedExisting
}

// Poller lists a subreddit and saves new images, once or repeatedly.
type Poller struct {
	cfg    *Config
	client *api.Client
	creds  api.Credentials
	prompt Prompter
	namer  media.Namer

	sleep func(ctx context.Context, d time.Duration) error
}

func NewPoller(cfg *Config, client *api.Client, creds api.Credentials, prompt Prompter) *Poller {
	return &Poller{
		cfg:    cfg,
		client: client,
		creds:  creds,
		prompt: prompt,
		namer:  media.Namer{MaxLength: media.DefaultMaxLength},
		sleep:  sleepContext,
	}
}

// Run performs cycles until one fails, or after the first one when repeating is off.
// Cancelling ctx while waiting between cycles stops the loop without an error.
func (p *Poller) Run(ctx context.Context) error {
	for {
		stats, err := p.Cycle(ctx)
		if err != nil {
			return err
		}

		event := log.Info().
			Str("subreddit", p.cfg.Subreddit).
			Int("inspected", stats.Inspected).
			Int("saved", stats.Saved).
			Int("skipped", stats.Skipped())
		if !p.cfg.Repeat {
			event.Msg("Images grabbed. Exiting.")
			return nil
		}
		event.Msgf("Images grabbed. Sleeping for %d seconds.", int(p.cfg.Wait.Seconds()))

		if err := p.sleep(ctx, p.cfg.Wait); err != nil {
			log.Debug().Err(err).Msg("wait interrupted")
			return nil
		}
	}
}

// Cycle logs in, resolves the subreddit, fetches one listing and saves every new image in it.
func (p *Poller) Cycle(ctx context.Context) (CycleStats, error) {
	var stats CycleStats

	if err := p.client.Login(p.creds); err != nil {
		return stats, err
	}

	subreddit, err := p.resolveSubreddit(ctx)
	if err != nil {
		return stats, err
	}

	posts, err := p.client.Subreddit.Listing(ctx, subreddit, p.cfg.Sort, p.cfg.Limit)
	if err != nil {
		return stats, err
	}
	log.Debug().Str("subreddit", subreddit).Stringer("sort", p.cfg.Sort).Int("posts", len(posts)).Msg("fetched listing")

	dir := p.cfg.SubredditDir()
	for i := range posts {
		post := &posts[i]
		stats.Inspected++

		if post.NSFW() && !p.cfg.NSFW {
			log.Debug().Str("url", post.URL()).Msg("filtered out NSFW")
			stats.SkippedNSFW++
			continue
		}
		if !media.IsImage(post.URL()) {
			log.Debug().Str("url", post.URL()).Msg("not a direct image link")
			stats.SkippedNotImage++
			continue
		}

		c, ok := p.namer.NewCandidate(post.Title(), post.URL(), subreddit, post.NSFW())
		if !ok {
			log.Warn().Str("url", post.URL()).Msg("no file name in image url")
			stats.SkippedUnnamed++
			continue
		}

		exists, err := files.Exists(dir, c.FileName, c.Extension)
		if err != nil {
			return stats, err
		}
		if exists {
			log.Debug().Str("file", c.Filename().String()).Msg("already downloaded")
			stats.SkippedExisting++
			continue
		}

		if err := p.download(ctx, c, dir); err != nil {
			return stats, err
		}
		stats.Saved++
	}

	return stats, nil
}

// resolveSubreddit returns the configured subreddit, asking the operator for
// another name for as long as reddit does not know it.
func (p *Poller) resolveSubreddit(ctx context.Context) (string, error) {
	for {
		name := p.cfg.Subreddit
		if api.ValidName(name) {
			ok, err := p.client.Subreddit.Exists(ctx, name)
			if err != nil {
				return "", err
			}
			if ok {
				return name, nil
			}
		}

		log.Warn().Str("subreddit", name).Msg("subreddit not found")
		answer, err := p.prompt.Ask(ctx, fmt.Sprintf("Subreddit %q does not exist. Enter a subreddit name: ", name))
		if err != nil {
			if errors.Is(err, api.ErrSubredditNotFound) {
				return "", fmt.Errorf("%w: %s", err, name)
			}
			return "", err
		}
		p.cfg.Subreddit = strings.ToLower(strings.TrimSpace(answer))
	}
}

func (p *Poller) download(ctx context.Context, c *media.Candidate, dir string) error {
	if err := files.EnsureDir(dir); err != nil {
		return err
	}

	log.Debug().Str("url", c.URL).Msg("downloading image")
	res, err := p.client.GetImage(ctx, c.URL)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	log.Debug().Str("save_name", c.SaveName).Msg("saving as")
	n, err := files.Save(dir, c.SaveName, res.Body)
	if err != nil {
		return err
	}

	log.Info().Str("file", c.SaveName).Int64("written_bytes", n).Msg("saved image")

	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
