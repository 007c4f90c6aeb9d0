package main

import (
	"io"
	"log/slog"

	"github.com/opyruso/nw-leaderboard-sub000/config"
	"github.com/opyruso/nw-leaderboard-sub000/relations"
)

// setup loads the configuration and builds the logger and backend client
// shared by every command.
func setup(configPath string, logOut io.Writer) (config.Config, *slog.Logger, *relations.Client, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, nil, err
	}

	logger, err := newLogger(cfg.Log, logOut)
	if err != nil {
		return cfg, nil, nil, err
	}

	client, err := relations.New(cfg.Backend.URL,
		relations.WithTimeout(cfg.Backend.Timeout),
		relations.WithUserAgent(cfg.Backend.UserAgent),
		relations.WithLogger(logger),
	)
	if err != nil {
		return cfg, nil, nil, err
	}

	return cfg, logger, client, nil
}

func newLogger(lc config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := lc.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if lc.Format == "text" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return slog.New(h), nil
}
