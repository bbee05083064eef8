package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo maps collections directly onto Mongo collections, the closest
// deployment to the managed document database this system was built for.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &Mongo{client: client, db: client.Database(dbName)}, nil
}

func (s *Mongo) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

func (s *Mongo) Create(ctx context.Context, collection string, doc any) (string, error) {
	fields, err := toFields(doc)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	fields["_id"] = id
	if _, err := s.db.Collection(collection).InsertOne(ctx, fields); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Mongo) Get(ctx context.Context, collection, id string) (Record, error) {
	var fields bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&fields)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return toRecord(id, fields)
}

func (s *Mongo) ListAll(ctx context.Context, collection string) ([]Record, error) {
	return s.find(ctx, collection, bson.M{})
}

func (s *Mongo) ListWhere(ctx context.Context, collection, field string, value any) ([]Record, error) {
	return s.find(ctx, collection, bson.M{field: value})
}

func (s *Mongo) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	res, err := s.db.Collection(collection).UpdateByID(ctx, id, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) find(ctx context.Context, collection string, filter bson.M) ([]Record, error) {
	cur, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Record
	for cur.Next(ctx) {
		var fields bson.M
		if err := cur.Decode(&fields); err != nil {
			return nil, err
		}
		id, _ := fields["_id"].(string)
		rec, err := toRecord(id, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, cur.Err()
}

// Documents travel as JSON everywhere else in the system; convert at the
// driver boundary in both directions.
func toFields(doc any) (map[string]any, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func toRecord(id string, fields bson.M) (Record, error) {
	delete(fields, "_id")
	body, err := json.Marshal(fields)
	if err != nil {
		return Record{}, err
	}
	return Record{ID: id, Data: body}, nil
}
