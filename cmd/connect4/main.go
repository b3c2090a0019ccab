package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/repository/redis"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/cleanup"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"
)

// finished games are dropped an hour after they end
const finishedSessionMaxAge = time.Hour

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Debug().Msg("no .env file found")
		}
	}
	cfg := config.LoadConfig()

	first := "machine"
	if cfg.HumanFirst {
		first = "human"
	}

	app := cli.NewApp()
	app.Name = "connect4"
	app.Usage = "play Connect Four against an alpha-beta search engine"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "difficulty", Value: cfg.Difficulty, Usage: "easy, medium or hard"},
		cli.IntFlag{Name: "depth", Value: cfg.Depth, Usage: "search depth in plies, overrides the difficulty"},
		cli.DurationFlag{Name: "time-budget", Value: cfg.TimeBudget, Usage: "time box for each machine move, 0 searches to full depth"},
		cli.IntFlag{Name: "workers", Value: cfg.Workers, Usage: "root moves searched in parallel, 0 means GOMAXPROCS"},
		cli.StringFlag{Name: "first", Value: first, Usage: "who opens: human or machine"},
		cli.StringFlag{Name: "redis-url", Value: cfg.RedisURL, Usage: "redis address for the reply cache, empty disables it"},
		cli.StringFlag{Name: "log-level", Value: cfg.LogLevel.String(), Usage: "trace, debug, info, warn or error"},
	}
	app.Action = func(c *cli.Context) error {
		return run(c, cfg)
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("connect4 failed")
	}
}

func run(c *cli.Context, cfg *config.Config) error {
	level, err := zerolog.ParseLevel(c.String("log-level"))
	if err != nil {
		return errors.Wrap(err, "parse log level")
	}
	logger := log.Logger.Level(level).With().Timestamp().Logger()

	var humanFirst bool
	switch c.String("first") {
	case "human":
		humanFirst = true
	case "machine":
	default:
		return errors.Errorf("--first must be human or machine, got %q", c.String("first"))
	}
	if depth := c.Int("depth"); depth < 0 {
		return &domain.InvalidDepthError{Depth: depth}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := bot.NewBoardEngine(bot.WithWorkers(c.Int("workers")), bot.WithLogger(logger))
	var searcher game.Searcher = game.NewEngineSearcher(engine, c.Duration("time-budget"))

	if addr := c.String("redis-url"); addr != "" {
		if err := redis.InitRedis(ctx, addr, cfg.RedisPassword, logger); err != nil {
			logger.Warn().Err(err).Msg("failed to initialize redis")
		}
		if redis.IsRedisEnabled() && redis.RedisClient != nil {
			searcher = game.NewCachedSearcher(searcher, redis.NewRedisCache(redis.RedisClient), cfg.RedisCacheTTL, logger)
		}
	}

	sessionManager := game.NewSessionManager(searcher, logger)
	workerCtx, stopWorker := context.WithCancel(ctx)
	workerDone := cleanup.NewWorker(sessionManager, cfg.CleanupInterval, finishedSessionMaxAge, cfg.SessionMaxAge, logger).Start(workerCtx)

	session := sessionManager.CreateSession(game.SessionOptions{
		Difficulty: bot.ParseDifficulty(c.String("difficulty")),
		Depth:      c.Int("depth"),
		HumanFirst: humanFirst,
	})
	playErr := play(ctx, os.Stdin, os.Stdout, session)

	// shutdown
	stopWorker()
	<-workerDone

	var result *multierror.Error
	if playErr != nil && !errors.Is(playErr, context.Canceled) {
		result = multierror.Append(result, errors.Wrap(playErr, "play"))
	}
	if err := sessionManager.RemoveSession(session.GameID); err != nil && !errors.Is(err, domain.ErrNoSession) {
		result = multierror.Append(result, err)
	}
	if err := redis.CloseRedis(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
