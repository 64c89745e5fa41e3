package repository

import (
    "database/sql"
    "fmt"

    _ "github.com/lib/pq"
    "github.com/rs/zerolog/log"

    "github.com/driftboard/driftboard-backend/config"
)

func ConnectToPostgreSQL(cfg *config.Config) *sql.DB {
    connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
        cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

    db, err := sql.Open("postgres", connStr)
    if err != nil {
        log.Fatal().Err(err).Msg("Failed to open PostgreSQL connection")
    }

    if err := db.Ping(); err != nil {
        db.Close()
        log.Fatal().Err(err).Msg("Failed to ping PostgreSQL")
    }

    log.Info().Msg("Successfully connected to PostgreSQL")
    return db
}
