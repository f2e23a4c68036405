package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"RoboScan360/util"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

/*
* Connect to mongo and ping the primary
* Keep the client and database for the process
 */
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	Client = client
	DB = client.Database(database)
	log.Info().Str("database", database).Msg("connected to mongo")
	return DB, nil
}

func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}

func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func IsDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func FindOne(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}, opts ...*options.FindOneOptions) error {
	return coll.FindOne(ctx, filter, opts...).Decode(out)
}

func FindAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	if opts == nil {
		opts = options.Find()
	}
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Exists reports whether at least one document matches filter.
func Exists(ctx context.Context, coll *mongo.Collection, filter interface{}) (bool, error) {
	count, err := coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

/*
* Insert the document
* A unique index collision is surfaced as ConstraintViolation
 */
func CreateOne(ctx context.Context, coll *mongo.Collection, doc interface{}) (*mongo.InsertOneResult, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if IsDuplicate(err) {
			return nil, util.WrapError(util.KindConstraintViolation, util.RECORD_ALREADY_EXISTS, err)
		}
		return nil, err
	}
	return res, nil
}

func UpdateOne(ctx context.Context, coll *mongo.Collection, filter, update interface{}) (*mongo.UpdateResult, error) {
	return coll.UpdateOne(ctx, filter, update)
}

// FindOneAndUpdate applies update and decodes the post-update document into
// out. It returns mongo.ErrNoDocuments when nothing matched.
func FindOneAndUpdate(ctx context.Context, coll *mongo.Collection, filter, update interface{}, out interface{}) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(out)
	if err != nil && IsDuplicate(err) {
		return util.WrapError(util.KindConstraintViolation, util.RECORD_ALREADY_EXISTS, err)
	}
	return err
}

func FindOneAndDelete(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}) error {
	return coll.FindOneAndDelete(ctx, filter).Decode(out)
}

func DeleteOne(ctx context.Context, coll *mongo.Collection, filter interface{}) (*mongo.DeleteResult, error) {
	return coll.DeleteOne(ctx, filter)
}
