package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"robotwar/internal/storage"
)

func openStore(ctx context.Context) (storage.Store, error) {
	store, err := storage.NewStore(flagStore, flagDB)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("init %s store: %w", flagStore, err)
	}
	return store, nil
}

// archive saves run when a store is selected and returns its id.
func archive(ctx context.Context, run storage.RunRecord) (string, error) {
	if flagStore == "" {
		return "", nil
	}
	store, err := openStore(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := storage.CloseIfSupported(store); err != nil {
			slog.Warn("close store", "err", err)
		}
	}()
	if err := store.SaveRun(ctx, run); err != nil {
		return "", err
	}
	slog.Info("run archived", "id", run.ID, "store", flagStore, "events", len(run.Events))
	return run.ID.String(), nil
}

func listRuns(ctx context.Context) int {
	if flagStore == "" {
		flagStore = "sqlite"
	}
	store, err := openStore(ctx)
	if err != nil {
		slog.Error("open store", "err", err)
		return exitOutput
	}
	defer storage.CloseIfSupported(store)

	runs, err := store.ListRuns(ctx, 20)
	if err != nil {
		slog.Error("list runs", "err", err)
		return exitOutput
	}
	if len(runs) == 0 {
		fmt.Println("no archived runs")
		return exitOK
	}
	for _, r := range runs {
		fmt.Printf("%s  seed %-20d %-24s %6s turns  %s\n",
			r.ID, r.Seed, r.Source, humanize.Comma(int64(r.TurnsPlayed)), humanize.Time(r.CreatedAt))
	}
	return exitOK
}
