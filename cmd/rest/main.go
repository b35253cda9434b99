package main

import (
	"context"
	"log"

	"sushi-ordering-be/internal/bootstrap"
	"sushi-ordering-be/internal/config"
	"sushi-ordering-be/internal/server"
	"sushi-ordering-be/internal/tracer"
	"sushi-ordering-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional: empty DSN falls back to memory)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services. Subscribe before seeding: the in-process
	// pub/sub drops messages published with no subscriber.
	log.Println("Background: Starting Consumer Service...")
	if err := container.ConsumerService.Consume(context.Background()); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	// 5. Seed the index when the catalog has items but nothing is indexed
	// yet (fresh deployment against an existing database). Non-fatal: an
	// operator can still POST /reindex.
	if err := container.MenuService.SeedIndex(context.Background()); err != nil {
		log.Printf("[WARN] Startup index seeding failed: %v", err)
	}

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
