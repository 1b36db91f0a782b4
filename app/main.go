package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rbhz/ydcv/app/api"
	"github.com/rbhz/ydcv/app/bot"
	"github.com/rbhz/ydcv/app/cli"
	"github.com/rbhz/ydcv/app/clients/youdao"
	"github.com/rbhz/ydcv/app/db"
	"github.com/rbhz/ydcv/app/lookup"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	log "github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

type Opts struct {
	AppKey    string `long:"app-key" env:"YD_APP_KEY" description:"Youdao OpenAPI application key"`
	AppSecret string `long:"app-secret" env:"YD_APP_SECRET" description:"Youdao OpenAPI application secret"`
	From      string `long:"from" env:"YD_FROM" default:"auto" description:"Source language"`
	To        string `long:"to" env:"YD_TO" default:"auto" description:"Target language"`

	Color   string `short:"c" long:"color" default:"auto" choice:"auto" choice:"always" choice:"never" description:"Colorize output"`
	HTML    bool   `short:"H" long:"html" description:"HTML output"`
	Raw     bool   `short:"r" long:"raw" description:"Print raw dictionary reply"`
	File    string `short:"f" long:"file" description:"Render saved dictionary reply, - for stdin"`
	Verbose bool   `short:"v" long:"verbose" description:"Debug logging"`

	BotToken  string `long:"bot-token" env:"BOT_TOKEN" description:"Telegram bot token, enables server mode"`
	BoltDB    string `long:"boltdb" env:"BOLTDB" default:"./ydcv.data" description:"Path to BoltDB"`
	RedisURL  string `long:"redis" env:"REDIS_URL" description:"Redis database URL"`
	JWTSecret string `long:"jwt" env:"JWT_SECRET" description:"JWT secret"`
	Port      int    `long:"port" env:"PORT" default:"8080" description:"Port to listen on"`

	Args struct {
		Words []string `positional-arg-name:"WORDS"`
	} `positional-args:"yes"`
}

func main() {
	var opts Opts
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	setupLog(opts)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("ydcv failed")
		cancel()
		os.Exit(1)
	}
}

func setupLog(opts Opts) {
	level := zerolog.WarnLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	if opts.BotToken != "" {
		// servers keep JSON logs on stderr
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		if !opts.Verbose {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !cli.IsTerminal(os.Stderr)})
}

func run(ctx context.Context, opts Opts) error {
	if opts.BotToken != "" {
		return runServer(ctx, opts)
	}

	formatter := cli.SelectFormatter(opts.Color, opts.HTML, cli.IsTerminal(os.Stdout))
	if opts.File != "" {
		data, err := readFile(opts.File)
		if err != nil {
			return err
		}
		return cli.NewRunner(lookup.Service{}, formatter, os.Stdout, opts.Raw).Render(data)
	}

	service, err := newService(opts, nil)
	if err != nil {
		return err
	}
	runner := cli.NewRunner(service, formatter, os.Stdout, opts.Raw)

	if len(opts.Args.Words) > 0 {
		for _, word := range opts.Args.Words {
			if err := runner.Lookup(ctx, word); err != nil {
				return err
			}
		}
		return nil
	}

	if cli.IsTerminal(os.Stdin) {
		rl, err := cli.NewPrompt(historyFile())
		if err != nil {
			return errors.Wrap(err, "failed to create prompt")
		}
		defer rl.Close()
		return runner.Interactive(ctx, rl)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		if err := runner.Lookup(ctx, word); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func runServer(ctx context.Context, opts Opts) error {
	if opts.JWTSecret == "" {
		return errors.New("--jwt is required in server mode")
	}
	storage, closeStorage, err := getStorage(opts)
	if err != nil {
		return err
	}
	defer closeStorage()

	service, err := newService(opts, storage)
	if err != nil {
		return err
	}

	// Start API
	go func() {
		server := api.NewServer(storage, service, opts.BotToken, opts.JWTSecret)
		log.Info().Int("port", opts.Port).Msg("starting API server")
		if err := server.Run(ctx, opts.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to run API server")
		}
	}()

	b, err := bot.NewTelegramBot(opts.BotToken, storage, []bot.Handler{
		bot.StartHandler{},
		bot.HistoryHandler{},
		bot.ClearHistoryHandler{},
		bot.NewLookupHandler(service),
	})
	if err != nil {
		return err
	}
	b.Start(ctx)
	return nil
}

func newService(opts Opts, storage db.Storage) (lookup.Service, error) {
	if opts.AppKey == "" || opts.AppSecret == "" {
		return lookup.Service{}, errors.New("--app-key and --app-secret are required for lookups")
	}
	client := youdao.NewClientWithLanguages(opts.AppKey, opts.AppSecret, opts.From, opts.To)
	return lookup.NewService(client, storage), nil
}

func getStorage(opts Opts) (db.Storage, func(), error) {
	if opts.RedisURL != "" {
		redisStorage, err := db.NewRedisStorage(opts.RedisURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to create redis client")
		}
		return redisStorage, func() {}, nil
	}
	boltDB, err := bolt.Open(opts.BoltDB, 0600, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create boltDB database")
	}
	boltStorage, err := db.NewBoltStorage(boltDB)
	if err != nil {
		_ = boltDB.Close()
		return nil, nil, errors.Wrap(err, "failed to create bolt storage")
	}
	return boltStorage, func() {
		if err := boltDB.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close boltDB database")
		}
	}, nil
}

func readFile(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ydcv_history")
}
