package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"transbot/internal/ports/output"
)

// RunCachePurge removes expired cache entries once at start, then every
// interval, until ctx is cancelled.
func RunCachePurge(ctx context.Context, purger output.TranslationCachePurger, interval time.Duration, logger *logrus.Logger) {
	if logger == nil {
		logger = logrus.New()
	}
	purge := func() {
		n, err := purger.Purge(ctx)
		if err != nil {
			if ctx.Err() == nil {
				logger.WithError(err).Warn("Translation cache purge failed")
			}
			return
		}
		logger.WithField("deleted", n).Debug("Translation cache purged")
	}

	purge()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purge()
		}
	}
}
