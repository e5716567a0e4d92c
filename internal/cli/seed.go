package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"learnplay/internal/config"
	"learnplay/internal/infra/postgres"
	"github.com/spf13/cobra"
)

// NewSeedCmd inserts the static catalog into Postgres so the `start`
// command can load it through the database path.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the static catalog into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath)
		},
	}
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	db := openBunDB(cfg.Postgres.URL)
	defer db.Close()

	catalog := seedCatalog()
	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("seed catalog invalid: %w", err)
	}

	for _, project := range catalog.Projects {
		doc := postgres.ProjectDoc{
			Project:  project,
			Segments: catalog.SegmentsOf(project.ID),
		}
		if quiz, ok := catalog.Quiz(project.ID); ok {
			doc.Quiz = &quiz
		}
		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal project %s: %w", project.ID, err)
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO catalog_projects (id, data) VALUES (?, ?) ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
			project.ID, string(payload),
		); err != nil {
			return fmt.Errorf("insert project %s: %w", project.ID, err)
		}
	}

	for i, entry := range catalog.Roster {
		payload, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal roster entry %s: %w", entry.Name, err)
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO leaderboard_roster (id, data) VALUES (?, ?) ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
			fmt.Sprintf("roster-%02d", i+1), string(payload),
		); err != nil {
			return fmt.Errorf("insert roster entry %s: %w", entry.Name, err)
		}
	}

	log.Printf("seeded %d projects and %d roster entries", len(catalog.Projects), len(catalog.Roster))
	return nil
}
