// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SweepResult counts what one sweep removed.
type SweepResult struct {
	Files   int
	Records int64
}

// Sweep deletes regular files in the upload and output directories whose
// modification time is older than the retention window, and status
// records created before it.
func (s *Server) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	cutoff := s.now().Add(-s.cfg.Retention)

	for _, dir := range []string{s.cfg.UploadDir, s.cfg.ConvertedDir} {
		n, err := sweepDir(dir, cutoff)
		res.Files += n
		if err != nil {
			return res, err
		}
	}

	n, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return res, err
	}
	res.Records = n
	return res, nil
}

func sweepDir(dir string, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("removing %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

// RunSweeper sweeps once immediately and then every SweepInterval until
// ctx is cancelled. Failed sweeps are logged and retried on the next tick.
func (s *Server) RunSweeper(ctx context.Context) {
	interval := s.cfg.SweepInterval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := s.Sweep(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("sweep failed")
		} else if res.Files > 0 || res.Records > 0 {
			s.log.Info().Int("files", res.Files).Int64("records", res.Records).Msg("swept expired conversions")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
