package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectMongoDB(uri string) *mongo.Client {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
    if err != nil {
        log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
    }

    if err := client.Ping(ctx, nil); err != nil {
        log.Fatal().Err(err).Msg("Failed to ping MongoDB")
    }

    log.Info().Msg("Successfully connected to MongoDB")
    return client
}
