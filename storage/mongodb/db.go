// Package mongodb implements the repositories on top of a MongoDB deployment,
// the platform's primary store.
package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dottech/backend/core"
)

const (
	usersCollection    = "users"
	studentsCollection = "students"
	teachersCollection = "teachers"

	connectTimeout = 10 * time.Second
)

// Open connects to the configured deployment and returns the application
// database along with a disconnect function for shutdown.
func Open(conf *core.Config) (*mongo.Database, func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Database.URI))
	if err != nil {
		return nil, nil, errors.Wrap(err, "connecting to mongodb")
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, errors.Wrap(err, "pinging mongodb")
	}
	return client.Database(conf.Database.Name), client.Disconnect, nil
}

// EnsureIndexes creates the indexes the contracts rely on; it is idempotent
// and runs at startup. The unique email index backs the uniqueness invariant
// at the store, not just in application code.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(err, "creating users email index")
	}

	_, err = db.Collection(studentsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return errors.Wrap(err, "creating students user_id index")
}

// newestFirst orders listings by creation time, id breaking ties.
func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
}

func isDupKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return false
}
