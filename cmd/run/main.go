package run

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/skwair/harmony"
	"github.com/urfave/cli/v2"
	"github.com/youkoulayley/remindme-bot/pkg/bot"
	"github.com/youkoulayley/remindme-bot/pkg/handlers"
	"github.com/youkoulayley/remindme-bot/pkg/logger"
	"github.com/youkoulayley/remindme-bot/pkg/platform"
	"github.com/youkoulayley/remindme-bot/pkg/reminder"
	"github.com/youkoulayley/remindme-bot/pkg/router"
	"github.com/youkoulayley/remindme-bot/pkg/scheduler"
	"github.com/youkoulayley/remindme-bot/pkg/store"
	"github.com/youkoulayley/remindme-bot/pkg/trigger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/multierr"
)

func run(cliCtx *cli.Context) (err error) {
	if err = logger.Setup(cliCtx.String(flagLogLevel), cliCtx.String(flagLogFormat)); err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cliCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	discordClient, err := harmony.NewClient(cliCtx.String(flagDiscordToken))
	if err != nil {
		return fmt.Errorf("create discord client: %w", err)
	}

	var (
		journal reminder.Journal
		history bot.History
	)

	if uri := cliCtx.String(flagMongoURI); uri != "" {
		var client *mongo.Client

		client, err = connectMongo(ctx, uri)
		if err != nil {
			return err
		}

		defer func() {
			err = multierr.Append(err, client.Disconnect(context.Background()))
		}()

		s := store.New(client, cliCtx.String(flagMongoDatabase))
		if err = s.Bootstrap(ctx); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}

		journal = s
		history = s
	}

	workers := cliCtx.Int(flagWorkers)

	sched := scheduler.New(
		scheduler.WithTick(cliCtx.Duration(flagTick)),
		scheduler.WithWorkers(workers),
	)
	registry := trigger.New(trigger.WithWorkers(workers))
	d := platform.NewDiscord(discordClient)

	rem := reminder.New(sched, registry, d, journal, reminder.Config{
		RetryDelay: cliCtx.Duration(flagRetryDelay),
		MaxRetries: cliCtx.Int(flagMaxRetries),
		MinDelay:   cliCtx.Duration(flagMinRemindDelay),
	})

	r, err := newRouter(cliCtx, d, bot.New(d, rem, history, cliCtx.String(flagCommandPrefix)))
	if err != nil {
		return err
	}

	h := handlers.New(ctx, r, registry)

	discordClient.OnReady(h.Ready)
	discordClient.OnMessageCreate(h.MessageCreate)
	discordClient.OnMessageReactionAdd(h.ReactionAdd)

	schedulerDone := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(schedulerDone)
	}()

	defer func() {
		cancel()
		<-schedulerDone
		registry.Close()
	}()

	if err = discordClient.Connect(ctx); err != nil {
		return fmt.Errorf("discord client connect: %w", err)
	}

	log.Info().Msg("Bot is now running. Press CTRL-C to exit.")

	<-ctx.Done()

	log.Info().Msg("Shutting down")
	discordClient.Disconnect()

	return nil
}

func newRouter(cliCtx *cli.Context, d router.Discord, b *bot.Bot) (*router.Router, error) {
	r := router.New(cliCtx.String(flagCommandPrefix), d)
	r.AddBucket(bot.BucketNoSpam, router.NewBucket(bot.NoSpamDelay))

	for _, c := range b.Commands(cliCtx.String(flagOwnerID)) {
		if err := r.Register(c); err != nil {
			return nil, fmt.Errorf("register command: %w", err)
		}
	}

	err := r.Register(router.Command{
		Name:        "help",
		Description: "Lists the commands",
		Handler:     r.Help,
	})
	if err != nil {
		return nil, fmt.Errorf("register help: %w", err)
	}

	return r, nil
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetSocketTimeout(2 * time.Second).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("create MongoDB client: %w", err)
	}

	if err = client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	return client, nil
}
