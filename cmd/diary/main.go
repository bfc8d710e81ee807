// Command diary is a personal diary for the terminal.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/personal-diary/internal/account"
	"github.com/nhle/personal-diary/internal/credential"
	"github.com/nhle/personal-diary/internal/diary"
	"github.com/nhle/personal-diary/internal/model"
	"github.com/nhle/personal-diary/internal/store"
	"github.com/nhle/personal-diary/internal/theme"
)

// skipStore marks commands that run without opening the database.
const skipStore = "skip-store"

// cli holds what every command needs. It is filled in by the root command's
// PersistentPreRunE.
type cli struct {
	cfgPath string
	dbPath  string

	cfg      *model.AppConfig
	logger   *slog.Logger
	store    *store.SQLiteStore
	diary    *diary.Diary
	accounts *account.Service

	openVault func(cfg *model.AppConfig) (*credential.Vault, error)
	vault     *credential.Vault
}

func main() {
	c := &cli{openVault: defaultVault}
	root := newRootCmd(c)

	err := root.Execute()
	c.close()
	if err != nil {
		printErr(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultVault(*model.AppConfig) (*credential.Vault, error) {
	return credential.Open(model.ConfigDir())
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "diary",
		Short:         "A personal diary for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.cfgPath, "config", model.DefaultConfigPath(), "config file")
	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "database path (overrides config)")

	root.AddCommand(initCmd(c))
	root.AddCommand(signupCmd(c))
	root.AddCommand(loginCmd(c))
	root.AddCommand(logoutCmd(c))
	root.AddCommand(deluserCmd(c))
	root.AddCommand(newCmd(c))
	root.AddCommand(showCmd(c))
	root.AddCommand(editCmd(c))
	root.AddCommand(rmCmd(c))
	root.AddCommand(lsCmd(c))
	root.AddCommand(searchCmd(c))
	root.AddCommand(tagsCmd(c))
	root.AddCommand(todayCmd(c))
	root.AddCommand(exportCmd(c))
	root.AddCommand(serveCmd(c))

	return root
}

// setup loads config, builds the logger and opens the store.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := model.LoadConfig(c.cfgPath)
	if err != nil {
		return err
	}
	if c.dbPath != "" {
		cfg.Database.Path = c.dbPath
	}
	c.cfg = cfg
	c.logger = newLogger(cmd.ErrOrStderr(), cfg.Log.Level)

	if cmd.Annotations[skipStore] == "true" {
		return nil
	}

	if cfg.Database.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}
	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	c.store = s
	c.diary = diary.New(s, diary.WithLogger(c.logger))
	c.accounts = account.NewService(s, c.logger)
	c.logger.Debug("store opened", "path", cfg.Database.Path)
	return nil
}

func (c *cli) close() {
	if c.store == nil {
		return
	}
	if err := c.store.Close(); err != nil && c.logger != nil {
		c.logger.Error("closing store", "error", err)
	}
	c.store = nil
}

// session returns the keyring-backed session, opening it on first use.
func (c *cli) session() (*credential.Vault, error) {
	if c.vault != nil {
		return c.vault, nil
	}
	v, err := c.openVault(c.cfg)
	if err != nil {
		return nil, err
	}
	c.vault = v
	return v, nil
}

// currentUser returns the logged-in user's id.
func (c *cli) currentUser() (string, error) {
	v, err := c.session()
	if err != nil {
		return "", err
	}
	id, err := v.ActiveUser()
	if errors.Is(err, credential.ErrNoSession) {
		return "", errors.New("not logged in: run `diary login` first")
	}
	return id, err
}

// defaultSort returns the sort flag value, or the configured default.
func (c *cli) defaultSort(flag string) model.SortType {
	if flag != "" {
		return model.ParseSortType(flag)
	}
	return model.ParseSortType(c.cfg.Display.DefaultSort)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// printErr renders err in the error style.
func printErr(w io.Writer, err error) {
	fmt.Fprintln(w, theme.ErrorStyle.Render("error:")+" "+err.Error())
}
