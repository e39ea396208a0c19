package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createStore(t *testing.T, deliveries []Delivery) *Store {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	ctx := context.Background()

	database := fmt.Sprint("remindme-", time.Now().UnixNano())

	client, err := mongo.NewClient(options.Client().ApplyURI(uri))
	require.NoError(t, err)

	err = client.Connect(ctx)
	require.NoError(t, err)

	store := New(client, database)

	err = store.Bootstrap(ctx)
	require.NoError(t, err)

	t.Cleanup(func() {
		err = client.Database(database).Drop(ctx)
		require.NoError(t, err)

		_ = client.Disconnect(ctx)
	})

	for _, d := range deliveries {
		_, err = store.deliveries.InsertOne(ctx, d)
		require.NoError(t, err)
	}

	return store
}
