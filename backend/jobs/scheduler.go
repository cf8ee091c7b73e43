package jobs

import (
	"context"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/robfig/cron/v3"
)

// StartScheduler runs the stale-attempt sweeper: in-progress quiz attempts
// whose time limit elapsed are transitioned to abandoned.
func StartScheduler(quiz *services.QuizService, cfg *config.Config, log *utils.Logger) *cron.Cron {
	grace := time.Duration(cfg.AttemptGraceMinutes) * time.Minute
	jobLog := log.With("job", "abandon_stale_attempts")

	c := cron.New()
	c.AddFunc("@every 5m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := quiz.AbandonStaleAttempts(ctx, grace); err != nil {
			jobLog.Error("sweep failed", "error", err)
		}
	})
	c.Start()
	return c
}
