package store

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDatabase struct {
	db *mongo.Database
}

func NewMongoDatabase(db *mongo.Database) *MongoDatabase {
	return &MongoDatabase{db: db}
}

func (m *MongoDatabase) Collection(name string) Collection {
	return NewMongoCollection(m.db.Collection(name))
}

type MongoCollection struct {
	col *mongo.Collection
}

func NewMongoCollection(col *mongo.Collection) *MongoCollection {
	return &MongoCollection{col: col}
}

func (m *MongoCollection) InsertOne(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()

	toInsert := make(bson.M, len(doc)+1)
	for k, v := range doc {
		toInsert[k] = v
	}
	toInsert["_id"] = id

	if _, err := m.col.InsertOne(ctx, toInsert); err != nil {
		return primitive.NilObjectID, err
	}
	return id, nil
}

func (m *MongoCollection) FindByID(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	var doc bson.M
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (m *MongoCollection) Find(ctx context.Context, q Query) ([]bson.M, error) {
	opts := options.Find().SetSkip(q.Skip)
	if q.SortBy != "" {
		opts.SetSort(bson.D{{Key: q.SortBy, Value: -1}, {Key: "_id", Value: -1}})
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := m.col.Find(ctx, filterToBSON(q.Filter), opts)
	if err != nil {
		return nil, err
	}

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (m *MongoCollection) Count(ctx context.Context, f Filter) (int64, error) {
	return m.col.CountDocuments(ctx, filterToBSON(f))
}

func (m *MongoCollection) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (UpdateResult, error) {
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (m *MongoCollection) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// filterToBSON translates a Filter into a query document. Contains values are
// quoted so user text never acts as a regular expression.
func filterToBSON(f Filter) bson.M {
	filter := bson.M{}
	for k, v := range f.Equals {
		filter[k] = v
	}
	for k, v := range f.Contains {
		filter[k] = bson.M{"$regex": regexp.QuoteMeta(v), "$options": "i"}
	}
	return filter
}
