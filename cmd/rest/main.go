package main

import (
	"context"
	"log"

	"companion-chat-be/internal/bootstrap"
	"companion-chat-be/internal/config"
	"companion-chat-be/internal/server"
	"companion-chat-be/internal/tracer"
	"companion-chat-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Ingest Consumer...")
		if err := container.IngestConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Ingest Consumer Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Starting Concept Consumer...")
		if err := container.ConceptConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Concept Consumer Error: %v", err)
		}
	}()

	log.Println("Background: Starting Event Monitor...")
	if err := container.EventMonitorService.Run(); err != nil {
		log.Printf("Background Event Monitor Error: %v", err)
	}
	defer container.EventMonitorService.Close()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
