// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/robfig/cron/v3"
)

// UploadJanitor purges spooled uploads that outlived their request.
//
// Handlers remove their spool files themselves; the janitor only catches
// files left behind by a crash or a killed process.
type UploadJanitor struct {
	dir    string
	maxAge time.Duration

	cron *cron.Cron
	now  func() time.Time

	logger *logger.Logger
}

func NewUploadJanitor(cfg config.Workers, logger *logger.Logger) (*UploadJanitor, error) {
	j := &UploadJanitor{
		dir:    cfg.UploadDir,
		maxAge: cfg.JanitorMaxAge,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		now:    time.Now,
		logger: logger,
	}

	if _, err := j.cron.AddFunc(cfg.JanitorSchedule, func() { j.Purge() }); err != nil {
		return nil, fmt.Errorf("invalid janitor schedule %q: %w", cfg.JanitorSchedule, err)
	}

	return j, nil
}

func (j *UploadJanitor) Run() {
	j.logger.Info().
		Str("dir", j.dir).
		Dur("max_age", j.maxAge).
		Msg("upload janitor started")
	j.cron.Start()
}

func (j *UploadJanitor) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("upload janitor stopped")
}

// Purge removes regular files in the upload dir older than the max age and
// returns how many were removed. A missing dir is not an error.
func (j *UploadJanitor) Purge() int {
	log := j.logger.With().Str("func", "*UploadJanitor.Purge").Logger()

	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Err(err).Str("dir", j.dir).Msg("failed to read upload dir")
		}
		return 0
	}

	cutoff := j.now().Add(-j.maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("failed to remove stale upload")
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Info().Int("removed", removed).Msg("stale uploads purged")
	}
	return removed
}
