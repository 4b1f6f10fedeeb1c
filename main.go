package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/handsomefox/imagemachine/api"
	"github.com/handsomefox/imagemachine/media"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var args AppArguments
	p := arg.MustParse(&args)

	cfg := args.Config()
	if err := cfg.Validate(); err != nil {
		p.Fail(err.Error())
	}

	if args.VerboseLogging {
		log.Logger = log.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Level(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime})

	log.Debug().Any("app_arguments", args).Send()

	if err := media.SelfCheck(); err != nil {
		log.Fatal().Err(err).Msg("image classifier is misconfigured")
	}

	creds, err := api.LoadCredentials(args.AuthFile, args.EnvFile)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading credentials")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, creds); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("interrupted, stopping")
			return
		}
		log.Fatal().Err(err).Msg("error running the app")
	}
}

func run(ctx context.Context, cfg *Config, creds api.Credentials) error {
	client := api.DefaultClient().WithTimeout(cfg.Timeout)
	poller := NewPoller(cfg, client, creds, NewPrompter(os.Stdin, os.Stdout))
	return poller.Run(ctx)
}
