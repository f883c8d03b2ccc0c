package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	"github.com/yungbote/foodgram-backend/internal/data/db"
	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/modules/catalog"
	"github.com/yungbote/foodgram-backend/internal/platform/envutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: seed [flags] FILE...\n\nFILE is a .json, .yaml/.yml or .csv catalog fixture.\n\n")
		flag.PrintDefaults()
	}
	migrate := flag.Bool("migrate", true, "run auto migration before seeding")
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), log, *migrate, flag.Args()); err != nil {
		log.Error("seed failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, migrate bool, files []string) error {
	dbService, err := db.NewService(log, db.ConfigFromEnv())
	if err != nil {
		return err
	}
	defer dbService.Close()
	if migrate {
		if err := dbService.AutoMigrateAll(); err != nil {
			return fmt.Errorf("automigrate: %w", err)
		}
	}

	theDB := dbService.DB()
	seeder := catalog.NewSeeder(catalog.SeederDeps{
		Log:         log,
		Runner:      aggregates.NewGormTxRunner(theDB),
		Ingredients: repos.NewIngredientRepo(theDB, log),
		Tags:        repos.NewTagRepo(theDB, log),
	})
	for _, path := range files {
		f, err := catalog.LoadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		res, err := seeder.Seed(ctx, f)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		log.Info("fixture loaded", "file", path,
			"ingredients_created", res.IngredientsCreated,
			"tags_created", res.TagsCreated,
		)
	}
	return nil
}
