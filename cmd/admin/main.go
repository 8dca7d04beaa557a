// Command admin is the operator CLI: schema migrations and password hashing.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/folio/backend/internal/config"
	"github.com/folio/backend/internal/logging"
	"github.com/folio/backend/internal/migrate"
	"github.com/folio/backend/internal/repository"
	"github.com/folio/backend/pkg/auth"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")

	if err := newRootCmd().Execute(); err != nil {
		logging.Fatal("command failed", "error", err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "folio backend administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Setup(cfg.LogLevel)
			return nil
		},
	}
	root.AddCommand(newMigrateCmd(), newHashPasswordCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "migrate [up|reset|fresh]",
		Short: "Apply SQL migrations",
		Long: `up     差分マイグレーションを適用 (default)
reset  全テーブルを DROP し、集約スキーマで再作成
fresh  全テーブルを DROP し、全マイグレーションを順番に適用`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "reset", "fresh"},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := "up"
			if len(args) == 1 {
				mode = args[0]
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = migrate.FindDir()
			}

			ctx := cmd.Context()
			pool, err := repository.NewPool(ctx, cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()
			return runMigrate(ctx, migrate.New(pool, dir), mode)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "migrations directory (default: ./migrations or ../migrations)")
	return cmd
}

type migrator interface {
	Up(ctx context.Context) (int, error)
	DropAll(ctx context.Context) error
	Consolidated(ctx context.Context) error
}

func runMigrate(ctx context.Context, m migrator, mode string) error {
	switch mode {
	case "up":
		_, err := m.Up(ctx)
		return err
	case "reset":
		if err := m.DropAll(ctx); err != nil {
			return err
		}
		return m.Consolidated(ctx)
	case "fresh":
		if err := m.DropAll(ctx); err != nil {
			return err
		}
		_, err := m.Up(ctx)
		return err
	default:
		return fmt.Errorf("unknown migrate mode %q (want up, reset or fresh)", mode)
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Read a password from stdin and print its bcrypt hash for OPERATOR_PASSWORD_HASH",
		Args:  cobra.NoArgs,
		// パスワード生成はセッション設定より前に使うので config を読まない
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(os.Getenv("LOG_LEVEL"))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := hashFromReader(cmd.InOrStdin())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func hashFromReader(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("empty password")
	}
	return auth.HashPassword(password)
}
