package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/catalog"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/config"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/repository/postgres"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/service"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/service/console"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop the view preferences table before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed saved views")
	operatorID := flag.String("operator", "", "Operator id to seed saved views for (required unless --schema-only)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}
	if !*schemaOnly && *operatorID == "" {
		log.Fatalf("--operator is required to seed saved views")
	}
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding saved views (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping view preferences table...")
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	viewCatalog, err := catalog.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load view catalog: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	prefsService := service.NewViewPreferencesService(
		postgres.NewViewPreferencesRepository(repoConfig),
		postgres.NewTransactionManager(repoConfig),
		viewCatalog,
		func(p *models.ViewPreferences) error { return console.CheckView(viewCatalog, p) },
		logger,
	)

	views := seedViews()
	for i, v := range views {
		prefs, err := prefsService.UpdatePreferences(ctx, *operatorID, v.entity, &v.request)
		if err != nil {
			log.Printf("❌ Failed to seed %s view: %v", v.entity, err)
			continue
		}
		log.Printf("✅ Seeded view %d/%d: %s (sort %s:%s, page size %d, tab %s)",
			i+1, len(views), prefs.Entity, prefs.SortKey, prefs.Direction, prefs.PageSize, prefs.Tab)
	}

	log.Println("🎉 Seeding complete!")
}

type seedView struct {
	entity  string
	request models.UpdateViewPreferencesRequest
}

// seedViews are the views the content team works with day to day
func seedViews() []seedView {
	return []seedView{
		{entity: "advices", request: models.UpdateViewPreferencesRequest{Sort: stringPtr("day"), Tab: stringPtr("6-9-months"), PageSize: intPtr(25)}},
		{entity: "articles", request: models.UpdateViewPreferencesRequest{Sort: stringPtr("scheduledAt:desc")}},
		{entity: "recipes", request: models.UpdateViewPreferencesRequest{Sort: stringPtr("-likes"), PageSize: intPtr(20)}},
		{entity: "users", request: models.UpdateViewPreferencesRequest{PageSize: intPtr(50)}},
		{entity: "doctors", request: models.UpdateViewPreferencesRequest{Sort: stringPtr("specialty")}},
	}
}

func stringPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
