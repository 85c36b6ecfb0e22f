package app

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/andy/ledgercraft/internal/autosave"
	"github.com/andy/ledgercraft/internal/config"
	"github.com/andy/ledgercraft/internal/domain"
	"github.com/andy/ledgercraft/internal/keychain"
	"github.com/andy/ledgercraft/internal/ledger"
	"github.com/andy/ledgercraft/internal/logger"
	"github.com/andy/ledgercraft/internal/snapshot"
	"github.com/andy/ledgercraft/internal/storage"
)

// App is the dependency injection container for all application components
type App struct {
	Config   *config.Config
	Log      zerolog.Logger
	Storage  *storage.Store
	Store    *ledger.Store
	Autosave *autosave.Manager
}

// New creates a new App instance, initializing all dependencies:
// config, encryption key, durable storage, the ledger store, and the
// autosave schedule.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	log := logger.New(cfg.Log.Level)

	kc := keychain.New()
	key, err := kc.GetKey()
	if errors.Is(err, keychain.ErrNoKey) {
		fmt.Println("Setting up storage encryption for the first time...")
		key, err = promptForPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}
		if err := kc.SetKey(key); err != nil {
			log.Warn().Err(err).
				Msgf("could not store key in keyring; set %s to avoid re-entering it", keychain.EnvKey)
		}
	} else if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage.Path, key)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	// Load the durable snapshot. Local corruption falls back silently to a
	// fresh ledger: there is no prior good copy to warn about losing.
	var led *domain.Ledger
	blob, err := store.Get(ctx, storage.SnapshotKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		led = domain.NewLedger()
	case err != nil:
		store.Close()
		return nil, err
	default:
		led, err = snapshot.Decode(blob)
		if err != nil {
			log.Warn().Err(err).Msg("stored snapshot is malformed, starting fresh")
			led = domain.NewLedger()
		}
	}

	// Restore the working invoice from its session slot, if a previous
	// process left one behind.
	var working *domain.Invoice
	if blob, err := store.Get(ctx, storage.WorkingKey); err == nil {
		working, err = snapshot.DecodeInvoice(blob)
		if err != nil {
			log.Warn().Err(err).Msg("stored working invoice is malformed, discarding")
			working = nil
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		store.Close()
		return nil, err
	}

	persist := func(l *domain.Ledger) error {
		data, err := snapshot.Encode(l)
		if err != nil {
			return err
		}
		return store.Put(context.Background(), storage.SnapshotKey, data)
	}
	persistWorking := func(inv *domain.Invoice) error {
		if inv == nil {
			return store.Delete(context.Background(), storage.WorkingKey)
		}
		data, err := snapshot.EncodeInvoice(inv)
		if err != nil {
			return err
		}
		return store.Put(context.Background(), storage.WorkingKey, data)
	}
	ledgerStore := ledger.NewStore(led, persist, persistWorking, log)
	ledgerStore.RestoreCurrent(working)

	mgr := autosave.NewManager(ledgerStore, cfg.AutosaveInterval(), autosave.SystemClock(), log)
	if ledgerStore.Settings().AutoSave {
		mgr.Start()
	}

	return &App{
		Config:   cfg,
		Log:      log,
		Storage:  store,
		Store:    ledgerStore,
		Autosave: mgr,
	}, nil
}

// SetAutoSave flips the preference and the running schedule together.
// Disabling stops the timer immediately with no further ticks.
func (a *App) SetAutoSave(enabled bool) error {
	if err := a.Store.SetAutoSave(enabled); err != nil {
		return err
	}
	if enabled {
		a.Autosave.Start()
	} else {
		a.Autosave.Stop()
	}
	return nil
}

// ImportLedger atomically replaces the ledger and aligns the autosave
// schedule with the imported settings.
func (a *App) ImportLedger(l *domain.Ledger) error {
	if err := a.Store.Import(l); err != nil {
		return err
	}
	if l.Settings.AutoSave {
		if !a.Autosave.Running() {
			a.Autosave.Start()
		}
	} else {
		a.Autosave.Stop()
	}
	return nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.Autosave != nil {
		a.Autosave.Stop()
	}
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}

// promptForPassword prompts the user for a new storage password (first run)
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your ledger will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for storage encryption: ")

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}
	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	return string(password), nil
}

// PromptPassword reads a password for encrypted export or import
func PromptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}
	return string(password), nil
}
