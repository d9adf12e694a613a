package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
)

type AsynqScheduleEntry struct {
	Cronspec string
	Task     *asynq.Task
}

type AsynqScheduler struct {
	RedisUsername string
	RedisPassword string
	RedisAddress  string
	RedisDB       int
}

func (s AsynqScheduler) Run(
	ctx context.Context,
	g *errgroup.Group,
	entries ...AsynqScheduleEntry,
) {
	g.Go(func() error {
		redisConnection := asynq.RedisClientOpt{
			Addr:     s.RedisAddress,
			Username: s.RedisUsername,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
		}

		scheduler := asynq.NewScheduler(redisConnection, &asynq.SchedulerOpts{})

		for _, e := range entries {
			if _, err := scheduler.Register(e.Cronspec, e.Task); err != nil {
				return fmt.Errorf("scheduler.Register: %w", err)
			}
		}

		go func() {
			<-ctx.Done()
			scheduler.Shutdown()
		}()

		logger(ctx).Info("asynq scheduler started", slog.String("redis-address", s.RedisAddress), slog.Int("redis-db", s.RedisDB))

		if err := scheduler.Run(); err != nil {
			return fmt.Errorf("asynqScheduler.Run: %w", err)
		}

		logger(ctx).Info("asynq scheduler stopped", slog.String("redis-address", s.RedisAddress), slog.Int("redis-db", s.RedisDB))

		return nil
	})
}
