package main

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/driftboard/driftboard-backend/auth"
	"github.com/driftboard/driftboard-backend/config"
	"github.com/driftboard/driftboard-backend/handlers"
	applog "github.com/driftboard/driftboard-backend/pkg/log"
	"github.com/driftboard/driftboard-backend/repository"
)

func main() {
	applog.InitLogger()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment as-is")
	}

	cfg := config.LoadConfig()

	db := repository.ConnectToPostgreSQL(cfg)
	mongoClient := repository.ConnectMongoDB(cfg.MongoURI)

	api := &handlers.API{
		Store:   repository.NewSQLStore(db),
		Strokes: repository.NewMongoStrokeStore(mongoClient),
		Hub:     handlers.NewHub(),
	}
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	r := handlers.NewRouter(api, verifier)

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.AllowedOrigins),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		gorillahandlers.AllowCredentials(),
	)

	log.Info().Str("port", cfg.Port).Msg("Server running")
	if err := http.ListenAndServe(":"+cfg.Port, cors(r)); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
