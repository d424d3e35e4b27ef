package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/storage"
	"github.com/vovakirdan/tile-arcade/internal/wallet"
)

// openStore opens the database and a wallet over it.
func openStore() (*storage.Store, *wallet.Wallet, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := wallet.NewCatalog(gameConfig.Shop)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("shop config: %w", err)
	}
	return store, wallet.New(store, catalog), nil
}

// openStoreOrWarn is openStore for interactive play, where games still run
// without scores or a wallet.
func openStoreOrWarn() (*storage.Store, *wallet.Wallet) {
	store, w, err := openStore()
	if err != nil {
		logger.Warn("could not open scores database, playing without scores or wallet", "err", err)
		return nil, nil
	}
	return store, w
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
