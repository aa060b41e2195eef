// Copyright 2026 The Collisionmap Authors
// SPDX-License-Identifier: MIT

// Package loader reads the collision table, region boundaries and school
// table into an immutable collision.Dataset, enforcing a declared schema.
package loader

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/collisionmap/collisionmap/internal/collision"
	"github.com/collisionmap/collisionmap/internal/redact"
	"github.com/collisionmap/collisionmap/internal/testable"
)

// defaultTimeout bounds remote source fetches when none is configured.
const defaultTimeout = 30 * time.Second

// Sources names the inputs to load. Schools is optional.
type Sources struct {
	Collisions         string
	Regions            string
	Schools            string
	RegionNameProperty string
}

// SourceResult records what one source produced.
type SourceResult struct {
	Name      string
	Source    string
	Rows      int
	Unlocated int
	Duration  time.Duration
}

// Loader reads sources from the file system or over HTTP.
type Loader struct {
	FS      testable.FileSystem
	HTTP    testable.HTTPDoer
	Timeout time.Duration
}

func (l *Loader) fs() testable.FileSystem {
	if l.FS != nil {
		return l.FS
	}
	return testable.DefaultFS
}

func (l *Loader) httpClient() testable.HTTPDoer {
	if l.HTTP != nil {
		return l.HTTP
	}
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return testable.DefaultHTTPClient(timeout)
}

// Load reads every configured source concurrently and blocks until all are
// done. The first failure is returned as a *collision.LoadError.
func (l *Loader) Load(ctx context.Context, src Sources) (*collision.Dataset, []SourceResult, error) {
	var (
		records    []collision.Record
		regions    []collision.Region
		schools    []collision.School
		resRecords SourceResult
		resRegions SourceResult
		resSchools SourceResult
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		rc, err := l.open(gctx, src.Collisions)
		if err != nil {
			return err
		}
		defer rc.Close() //nolint:errcheck // read-only
		records, err = ReadCollisions(src.Collisions, rc)
		if err != nil {
			return err
		}
		resRecords = SourceResult{Name: "collisions", Source: src.Collisions, Rows: len(records), Duration: time.Since(start)}
		for i := range records {
			if !records[i].HasLocation {
				resRecords.Unlocated++
			}
		}
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		data, err := l.readAll(gctx, src.Regions)
		if err != nil {
			return err
		}
		regions, err = ReadRegions(src.Regions, data, src.RegionNameProperty)
		if err != nil {
			return err
		}
		resRegions = SourceResult{Name: "regions", Source: src.Regions, Rows: len(regions), Duration: time.Since(start)}
		return nil
	})

	if src.Schools != "" {
		g.Go(func() error {
			start := time.Now()
			rc, err := l.open(gctx, src.Schools)
			if err != nil {
				return err
			}
			defer rc.Close() //nolint:errcheck // read-only
			schools, err = ReadSchools(src.Schools, rc)
			if err != nil {
				return err
			}
			resSchools = SourceResult{Name: "schools", Source: src.Schools, Rows: len(schools), Duration: time.Since(start)}
			for i := range schools {
				if !schools[i].HasLocation {
					resSchools.Unlocated++
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	results := []SourceResult{resRecords, resRegions}
	if src.Schools != "" {
		results = append(results, resSchools)
	}
	for _, r := range results {
		slog.Debug("source loaded", "name", r.Name, "source", redact.String(r.Source), "rows", r.Rows, "duration", r.Duration)
	}

	return &collision.Dataset{Records: records, Regions: regions, Schools: schools}, results, nil
}
