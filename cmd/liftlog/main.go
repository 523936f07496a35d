package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"liftlog/internal/api"
	"liftlog/internal/cache"
	"liftlog/internal/cli"
	"liftlog/internal/cli/auth"
	"liftlog/internal/cli/exercises"
	"liftlog/internal/cli/record"
	"liftlog/internal/cli/sets"
	"liftlog/internal/cli/system"
	"liftlog/internal/cli/workouts"
	"liftlog/internal/constants"
	"liftlog/internal/logger"
	"liftlog/internal/session"
)

var CLI struct {
	Version    kong.VersionFlag
	APIURL     string        `help:"Backend base URL." env:"LIFTLOG_API_URL" default:"${api_url}"`
	ConfigDir  string        `help:"Config directory." env:"LIFTLOG_CONFIG_DIR" type:"path" default:"${config_dir}"`
	Debug      bool          `help:"Verbose logging to stderr." env:"LIFTLOG_DEBUG"`
	Timeout    time.Duration `help:"Request timeout for backend calls." env:"LIFTLOG_TIMEOUT" default:"30s"`
	TokenStore string        `help:"Where to keep the session token." enum:"auto,keyring,file" default:"auto"`

	Login    auth.LoginCmd    `cmd:"" help:"Sign in and store the session token."`
	Logout   auth.LogoutCmd   `cmd:"" help:"Sign out and discard the session token."`
	Register auth.RegisterCmd `cmd:"" help:"Create an account."`
	Whoami   auth.WhoamiCmd   `cmd:"" help:"Show the signed-in user."`
	History  workouts.HistoryCmd `cmd:"" help:"List logged workouts, newest first."`
	Workout  struct {
		Show   workouts.ShowCmd   `cmd:"" help:"Show one workout with its sets."`
		New    workouts.NewCmd    `cmd:"" help:"Log a workout from flags."`
		Edit   workouts.EditCmd   `cmd:"" help:"Edit a workout's title or notes."`
		Delete workouts.DeleteCmd `cmd:"" help:"Delete a workout."`
	} `cmd:"" help:"Manage workouts."`
	Set struct {
		Add    sets.SetAddCmd    `cmd:"" help:"Append a set to a workout."`
		Edit   sets.SetEditCmd   `cmd:"" help:"Change individual fields of a set."`
		Delete sets.SetDeleteCmd `cmd:"" help:"Delete a set."`
	} `cmd:"" help:"Manage sets within a workout."`
	Exercise struct {
		List   exercises.ListCmd   `cmd:"" help:"List the exercise catalog." default:"1"`
		Add    exercises.AddCmd    `cmd:"" help:"Add a custom exercise."`
		Delete exercises.DeleteCmd `cmd:"" help:"Delete a custom exercise."`
	} `cmd:"" help:"Manage the exercise catalog."`
	Voice record.VoiceCmd `cmd:"" help:"Log a workout by voice."`
	Tui   system.TuiCmd   `cmd:"" help:"Launch the interactive TUI." default:"1"`
}

func main() {
	// A .env next to the binary is a dev convenience; absence is fine.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Workout log client: history, set editing, and voice logging"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"api_url":    constants.DefaultAPIURL,
			"config_dir": constants.DefaultConfigDir,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: CLI.ConfigDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	store, err := openTokenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gate, err := session.NewGate(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read stored session: %v\n", err)
		os.Exit(1)
	}
	gate.OnSessionExpired = func() {
		fmt.Fprintln(os.Stderr, "Session expired — run 'liftlog login' to sign in again.")
	}

	localCache := cache.New(filepath.Join(CLI.ConfigDir, constants.CacheFileName))
	if err := localCache.Open(); err != nil {
		logger.Warn("offline cache unavailable", "error", err)
		localCache = nil
	} else {
		defer localCache.Close()
	}

	client := api.NewClient(CLI.APIURL, gate)
	client.SetTimeout(CLI.Timeout)

	appCtx := &cli.Context{
		Client:    client,
		Cache:     localCache,
		Store:     store,
		ConfigDir: CLI.ConfigDir,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

// openTokenStore picks the credential backend: the OS keyring when it works,
// a mode-0600 file under the config dir otherwise.
func openTokenStore() (session.TokenStore, error) {
	filePath := filepath.Join(CLI.ConfigDir, constants.SessionFileName)

	switch CLI.TokenStore {
	case "keyring":
		if !session.KeyringAvailable() {
			return nil, fmt.Errorf("OS keyring is unavailable; use --token-store=file")
		}
		return session.NewKeyringStore(), nil
	case "file":
		return session.NewFileStore(filePath), nil
	default:
		if session.KeyringAvailable() {
			return session.NewKeyringStore(), nil
		}
		logger.Debug("keyring unavailable, falling back to file token store", "path", filePath)
		return session.NewFileStore(filePath), nil
	}
}
