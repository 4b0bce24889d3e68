package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumeng/mathquest/internal/app"
	"github.com/lumeng/mathquest/internal/progress"
	"github.com/lumeng/mathquest/internal/questionbank"
	"github.com/lumeng/mathquest/internal/seed"
	"github.com/lumeng/mathquest/internal/store"
)

// openStore opens the database and seeds demo data into any empty
// collection.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if err := seed.Ensure(context.Background(), st, rng, time.Now); err != nil {
		st.Close()
		return nil, fmt.Errorf("seed demo data: %w", err)
	}
	return st, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	source := questionbank.SourceFor(resolveCatalog(cmd))
	bank := questionbank.New(source, rand.New(rand.NewSource(time.Now().UnixNano())))

	return app.Run(app.Options{
		Tracker: progress.NewTracker(st),
		Bank:    bank,
	})
}
