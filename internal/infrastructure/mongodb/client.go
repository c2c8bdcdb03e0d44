package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/tienda-api/pkg/config"
)

// Timeout por operación contra MongoDB.
const opTimeout = 5 * time.Second

// Collections agrupa las colecciones que usa la aplicación.
type Collections struct {
	Users    *mongo.Collection
	Products *mongo.Collection
	Payments *mongo.Collection
}

// NewClient crea y verifica un cliente de MongoDB usando la configuración de la app.
func NewClient(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.ConnectionString()))
	if err != nil {
		return nil, fmt.Errorf("conectar a MongoDB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, nil
}

// NewCollections resuelve las colecciones sobre la base de datos configurada.
func NewCollections(client *mongo.Client, database string) *Collections {
	db := client.Database(database)
	return &Collections{
		Users:    db.Collection("users"),
		Products: db.Collection("products"),
		Payments: db.Collection("payments"),
	}
}

// EnsureIndexes crea los índices que el dominio exige: email único en users.
func (c *Collections) EnsureIndexes(ctx context.Context) error {
	idxCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	_, err := c.Users.Indexes().CreateOne(idxCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("crear índice único de email: %w", err)
	}
	return nil
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}
