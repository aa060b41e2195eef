// Copyright 2026 The Collisionmap Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/collisionmap/collisionmap/internal/config"
	"github.com/collisionmap/collisionmap/internal/dashboard"
	"github.com/collisionmap/collisionmap/internal/loader"
	"github.com/collisionmap/collisionmap/internal/report"
	"github.com/collisionmap/collisionmap/internal/route"
	"github.com/collisionmap/collisionmap/internal/testable"
	"github.com/collisionmap/collisionmap/internal/transform"
)

// Seams for tests.
var (
	cmdFS   testable.FileSystem = testable.DefaultFS
	cmdHTTP testable.HTTPDoer

	// serveContext returns the context the server runs under.
	serveContext = func(parent context.Context) (context.Context, context.CancelFunc) {
		return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	}
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return exitError(ExitFailure, "collisionmap: %v", err)
	}

	ld := &loader.Loader{FS: cmdFS, HTTP: cmdHTTP, Timeout: cfg.Sources.Timeout}
	ds, results, err := ld.Load(cmd.Context(), loader.Sources{
		Collisions:         cfg.Sources.Collisions,
		Regions:            cfg.Sources.Regions,
		Schools:            cfg.Sources.Schools,
		RegionNameProperty: cfg.Regions.NameProperty,
	})
	if err != nil {
		return exitError(ExitFailure, "collisionmap: %v", err)
	}

	joined := transform.Join(ds.Records, ds.Regions)
	radius := cfg.Schools.RadiusMiles * transform.MetersPerMile
	var schools *transform.SchoolIndex
	if cfg.Sources.Schools != "" {
		schools = transform.IndexSchools(joined, ds.Schools, radius)
	}
	slog.Debug("data ready", "records", len(joined.Records), "regions", len(joined.Regions), "schools", len(ds.Schools))

	if !quiet {
		if err := report.NewSummary(results, joined, cfg.Sources.Schools != "").Render(cmd.ErrOrStderr()); err != nil {
			return exitError(ExitFailure, "collisionmap: write summary: %v", err)
		}
	}

	var router route.Router
	if cfg.Route.OSRMURL != "" {
		router = route.NewOSRM(cfg.Route.OSRMURL, cfg.Route.Timeout)
	}
	app, err := dashboard.New(joined, schools, dashboard.Options{
		Map:                cfg.Map,
		Route:              cfg.Route,
		Charts:             cfg.Charts,
		SchoolRadiusMeters: radius,
		Router:             router,
	})
	if err != nil {
		return exitError(ExitFailure, "collisionmap: %v", err)
	}

	srv, err := dashboard.NewServer(cfg.Server.Addr, app.Handler())
	if err != nil {
		return exitError(ExitFailure, "collisionmap: %v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Dashboard ready at %s (Ctrl+C to stop)\n", srv.URL())

	if !cfg.Server.NoBrowser {
		if err := openBrowser(cmd.Context(), cmdExec, runtime.GOOS, srv.URL()); err != nil {
			slog.Warn("could not open browser", "error", err)
		}
	}

	ctx, stop := serveContext(cmd.Context())
	defer stop()
	if err := srv.ListenAndServe(ctx); err != nil {
		return exitError(ExitFailure, "collisionmap: %v", err)
	}
	return nil
}

// resolveConfig layers defaults, the config file, the environment and the
// flags the user set, then validates the result.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	file, err := config.LoadFS(cmdFS, configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg := config.Merge(config.Defaults(), *file)
	if err := config.ParseEnv(&cfg); err != nil {
		return config.Config{}, err
	}
	cfg = config.Merge(cfg, flagOverrides(cmd))
	// Merge cannot express an explicit false.
	if cmd.Flags().Changed("no-browser") {
		cfg.Server.NoBrowser = noBrowser
	}
	if err := config.Validate(&cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func flagOverrides(cmd *cobra.Command) config.Config {
	var o config.Config
	f := cmd.Flags()
	if f.Changed("addr") {
		o.Server.Addr = serveAddr
	}
	if f.Changed("collisions") {
		o.Sources.Collisions = collisionsPath
	}
	if f.Changed("regions") {
		o.Sources.Regions = regionsPath
	}
	if f.Changed("schools") {
		o.Sources.Schools = schoolsPath
	}
	return o
}
