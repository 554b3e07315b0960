package main

import (
	"context"
	"fmt"
	"mood_tracker/internal/config"
	"mood_tracker/internal/logger"
	"mood_tracker/internal/storage"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const serviceName = "mood_tracker"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mood_tracker",
		Short:         "Log moods to Postgres and browse the history",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newInitDBCmd(), newSaveCmd(), newLogCmd(), newLastCmd())
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is what every command needs once startup succeeded.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	pool  *pgxpool.Pool
	moods *storage.MoodStorage
}

// bootstrap loads config, connects and ensures the schema. Any failure here
// is fatal for the command.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	log := logger.New(serviceName, cfg.LogLevel)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()

	pool, err := storage.Connect(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	moods := storage.NewMoodStorage(pool)
	if err := moods.EnsureSchema(connectCtx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Debug().Msg("connected to db successfully")

	return &app{cfg: cfg, log: log, pool: pool, moods: moods}, nil
}

func (a *app) Close() {
	a.pool.Close()
}
