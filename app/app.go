package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"salestrack/app/controller"
	"salestrack/app/router"
	"salestrack/blob"
	"salestrack/export"
	"salestrack/persistence"
	"salestrack/seed"
	"salestrack/service"
	"salestrack/store"
)

var persister persistence.Persister

// Initialize initializes the application
func Initialize() error {
	ctx := context.Background()

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin"
		log.Printf("⚠️ Initialize: ADMIN_PASSWORD not set, using the default admin password")
	}

	users, err := store.NewUserRegistry(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to initialize user registry: %w", err)
	}
	sales := store.NewSaleStore()

	// Optional snapshot persistence. Without a configured backend the
	// stores stay purely in-memory.
	persister, err = persistence.OpenFromEnv(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	if persister != nil {
		snap, found, err := persister.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}
		if found {
			sales.ImportState(snap.Sales, snap.Counter)
			users.ImportState(persistence.RestoreUsers(snap.Users))
			log.Printf("✅ Initialize: restored %d sales and %d users from snapshot", len(snap.Sales), len(snap.Users))
		}

		save := func() {
			salesSnap, counter := sales.ExportState()
			err := persister.Save(context.Background(), persistence.Snapshot{
				Sales:   salesSnap,
				Users:   persistence.SnapshotUsers(users.Snapshot()),
				Counter: counter,
			})
			if err != nil {
				log.Printf("❌ Persistence: failed to save snapshot: %v", err)
			}
		}
		sales.OnChange = save
		users.OnChange = save
	}

	// Load the sample dataset on demand for demos and local development
	if os.Getenv("SEED_SAMPLE_DATA") == "true" && sales.Count() == 0 {
		if err := seed.Apply(users, sales); err != nil {
			return fmt.Errorf("failed to seed sample data: %w", err)
		}
	}

	// Blob store for CSV exports
	exportTarget := os.Getenv("SALESTRACK_EXPORT_TARGET")
	if exportTarget == "" {
		exportTarget = "mem://"
	}
	blobStore, err := blob.Open(ctx, exportTarget)
	if err != nil {
		return fmt.Errorf("failed to open export store: %w", err)
	}

	// Initialize services
	sessions := service.NewSessionManager()
	salesService := service.NewSalesService(sales)
	authService := service.NewAuthService(users, sales, sessions)
	exporter := export.NewExporter(blobStore)

	// Create controllers
	controllers := &router.Controllers{
		Auth:      controller.NewAuthController(authService),
		Sale:      controller.NewSaleController(salesService, authService),
		Search:    controller.NewSearchController(salesService, authService),
		Dashboard: controller.NewDashboardController(salesService, authService),
		User:      controller.NewUserController(authService),
		Export:    controller.NewExportController(salesService, authService, exporter),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}

// Close releases the persistence backend if one was opened
func Close() {
	if persister != nil {
		if err := persister.Close(); err != nil {
			log.Printf("❌ Persistence: error closing backend: %v", err)
		}
	}
}
