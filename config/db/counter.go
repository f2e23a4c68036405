package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"RoboScan360/util"
)

type counter struct {
	Name string `bson:"_id"`
	Seq  int64  `bson:"seq"`
}

// NextID hands out the next integer id for a collection. Ids are
// monotonically increasing and independent of the storage _id.
func NextID(ctx context.Context, database *mongo.Database, collection string) (int64, error) {
	coll := database.Collection(util.CounterCollection)
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var c counter
	err := coll.FindOneAndUpdate(ctx,
		bson.M{"_id": collection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, err
	}
	return c.Seq, nil
}
