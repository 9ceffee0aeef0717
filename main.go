package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bu6wer8/student-services-V2/internals/auth"
	"github.com/bu6wer8/student-services-V2/internals/config"
	"github.com/bu6wer8/student-services-V2/internals/initializers"
	"github.com/bu6wer8/student-services-V2/internals/logging"
	"github.com/bu6wer8/student-services-V2/internals/routes"
)

func main() {
	hashPassword := flag.String("hash-password", "", "print a password hash for ADMIN_PASSWORD_HASH and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			log.Fatal("Failed to hash password: ", err)
		}
		fmt.Println(hash)
		os.Exit(0)
	}

	initializers.LoadEnvVariables()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	appLog := logging.NewLogger(cfg.Debug)
	auditLog := logging.NewAuditLogger(cfg.AuditLogPath)

	db, err := initializers.ConnectToDb(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to DB: ", err)
	}
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	svc := auth.NewService(auth.Config{
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: cfg.AdminPasswordHash,
		SecretKey:         cfg.SecretKey,
		Audit:             auditLog,
		Log:               appLog,
	})

	initializers.StartJanitor(svc, cfg.JanitorInterval, appLog)

	r := routes.SetupRouter(cfg, svc, db)

	appLog.Info("admin server listening", "addr", cfg.Addr, "debug", cfg.Debug)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal("Server error: ", err)
	}
}
