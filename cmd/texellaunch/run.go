// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texellaunch/run.go
// Summary: The run mode: pick an application from the registry and start it.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/framegrace/texellaunch/apps/launcher"
	"github.com/framegrace/texellaunch/config"
	"github.com/framegrace/texellaunch/history"
	"github.com/framegrace/texellaunch/internal/launch"
	"github.com/framegrace/texellaunch/internal/logging"
	"github.com/framegrace/texellaunch/registry"
)

// launchCommand starts a chosen entry. Tests replace it to observe launches.
var launchCommand = func(ctx context.Context, r *launch.Runner, c launch.Command) error {
	return r.Run(ctx, c)
}

func newRunCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:         "run",
		Short:       "Pick an application and start it",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{fullscreenAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLauncher(cmd, ro, "run")
		},
	}
}

func runLauncher(cmd *cobra.Command, ro *rootOptions, mode string) error {
	ctx := cmd.Context()
	log := logging.Component("run")

	opts, err := launcherOptions(cmd, ro, mode)
	if err != nil {
		return err
	}
	cfg := config.Effective(mode)

	reg, store, err := loadSources(ctx, cfg, mode)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		opts.History = store
	}

	l, err := launcher.New(ctx, launcher.EntriesFromRegistry(reg), opts)
	if err != nil {
		return err
	}
	if err := hostApp(ctx, ro.host, l, false); err != nil {
		return err
	}

	res := l.Result()
	runner := launch.NewRunner(cfg.GetStrings("launcher", "terminal"))
	switch res.Outcome {
	case launcher.Accepted:
		var errs []error
		for _, e := range res.Entries {
			c, err := reg.Command(e.Name)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			log.Info().Str("entry", e.Name).Str("command", c.String()).Msg("launching")
			if err := launchCommand(ctx, runner, c); err != nil {
				errs = append(errs, fmt.Errorf("launch %s: %w", e.Name, err))
			}
		}
		return errors.Join(errs...)
	case launcher.AcceptedCustom:
		c := shellCommand(res.Input)
		log.Info().Str("command", c.String()).Msg("launching custom input")
		return launchCommand(ctx, runner, c)
	}
	log.Debug().Stringer("outcome", res.Outcome).Msg("nothing to launch")
	return nil
}

// loadSources scans the entry directories and opens the history store
// concurrently. A history store that cannot be opened is skipped.
func loadSources(ctx context.Context, cfg config.Config, mode string) (*registry.Registry, *history.Store, error) {
	var (
		reg   *registry.Registry
		store *history.Store
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := loadRegistry(cfg)
		if err != nil {
			return err
		}
		reg = r
		return nil
	})
	g.Go(func() error {
		store = openHistory(gctx, cfg, mode)
		return nil
	})
	if err := g.Wait(); err != nil {
		store.Close()
		return nil, nil, err
	}
	return reg, store, nil
}

func loadRegistry(cfg config.Config) (*registry.Registry, error) {
	reg := registry.New()
	registry.RegisterBuiltIns(reg)
	if err := reg.Scan(config.AppDirs()...); err != nil {
		return nil, fmt.Errorf("scan entries: %w", err)
	}
	if cfg.GetBool("launcher", "scan_path", true) {
		reg.ScanPath(os.Getenv("PATH"))
	}
	return reg, nil
}

// openHistory returns nil when history is disabled or unavailable.
func openHistory(ctx context.Context, cfg config.Config, mode string) *history.Store {
	if !cfg.GetBool("launcher", "history", true) {
		return nil
	}
	log := logging.Component("history")
	path := cfg.GetString("launcher", "history_path", "")
	if path == "" {
		p, err := config.HistoryPath()
		if err != nil {
			log.Warn().Err(err).Msg("no history location")
			return nil
		}
		path = p
	}
	store, err := history.Open(ctx, path, history.WithMode(mode))
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("history disabled")
		return nil
	}
	return store
}

// shellCommand runs free-form input through the user's shell.
func shellCommand(line string) launch.Command {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return launch.Command{Path: shell, Args: []string{"-c", line}}
}
