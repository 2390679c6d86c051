package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"disclosure_backend/internal/app/config"
	"disclosure_backend/internal/app/di"
	assistantentity "disclosure_backend/internal/feature/assistant/domain/entity"
	assistantdto "disclosure_backend/internal/feature/assistant/transport/http/dto"
	disclosureadapters "disclosure_backend/internal/feature/disclosure/adapters"
	similardomain "disclosure_backend/internal/feature/similarcompany/domain"
	similardto "disclosure_backend/internal/feature/similarcompany/transport/http/dto"
	infradb "disclosure_backend/internal/platform/db"
	jwtmw "disclosure_backend/internal/platform/jwt"
	"disclosure_backend/internal/platform/logging"
	infraredis "disclosure_backend/internal/platform/redis"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "disclosurectl",
		Usage:     "Operate the disclosure peer-company search store",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: func(c *cli.Context) error {
			slog.SetDefault(logging.New(os.Stderr, "text", c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Load disclosure records from a JSON file into the store",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON array of disclosure records",
						Required: true,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Answer a question the same way POST /v1/ask does",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "LLM API key for elaboration (defaults to the server key)",
						EnvVars: []string{"LLM_API_KEY"},
					},
				},
			},
			{
				Name:   "sectors",
				Usage:  "List issuer industries present in the store",
				Action: sectorsCommand,
			},
			{
				Name:   "token",
				Usage:  "Issue an API token signed with JWT_SECRET",
				Action: tokenCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "subject",
						Aliases:  []string{"s"},
						Usage:    "Name of the API client",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "ttl",
						Usage: "Token lifetime",
						Value: 24 * time.Hour,
					},
				},
			},
		},
	}
}

// openServices は設定を読み込み、ストアとユースケースを組み立てます。
// 返されるcloseはRedisクライアントを閉じます。
func openServices(ctx context.Context, migrate bool) (*di.Services, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	cfg.DB.RunMigrations = cfg.DB.RunMigrations || migrate

	db, err := infradb.Open(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	}
	closeFn := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
	}

	svc, err := di.NewServices(cfg, db, rdb, slog.Default())
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return svc, closeFn, nil
}

func seedCommand(c *cli.Context) error {
	f, err := os.Open(c.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := disclosureadapters.DecodeRecords(f)
	if err != nil {
		return err
	}

	svc, closeFn, err := openServices(c.Context, true)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := svc.Seed.Seed(c.Context, records)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "seeded %d records (%d skipped)\n", res.Written, res.Skipped)
	return err
}

func askCommand(c *cli.Context) error {
	question := c.Args().First()
	if question == "" {
		return errors.New("question is required")
	}

	svc, closeFn, err := openServices(c.Context, false)
	if err != nil {
		return err
	}
	defer closeFn()

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")

	reply, err := svc.Assistant.Ask(c.Context, question, c.String("api-key"))
	if errors.Is(err, similardomain.ErrNoMatch) {
		// キーワードが見つからないのは失敗ではないため、案内メッセージを出して正常終了する
		return enc.Encode(assistantdto.AskResponse{
			Question: question,
			Route:    string(assistantentity.RoutePeer),
			Message:  similardto.NoMatchMessage,
		})
	}
	if err != nil {
		return err
	}
	return enc.Encode(assistantdto.FromReply(reply))
}

func sectorsCommand(c *cli.Context) error {
	svc, closeFn, err := openServices(c.Context, false)
	if err != nil {
		return err
	}
	defer closeFn()

	sectors, err := svc.Search.ListSectors(c.Context)
	if err != nil {
		return err
	}
	for _, s := range sectors {
		if _, err := fmt.Fprintln(c.App.Writer, s); err != nil {
			return err
		}
	}
	return nil
}

func tokenCommand(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("%s is not set", jwtmw.EnvKeyJWTSecret)
	}
	token, err := jwtmw.NewGenerator(cfg.JWTSecret, c.Duration("ttl")).GenerateToken(c.String("subject"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, token)
	return err
}
