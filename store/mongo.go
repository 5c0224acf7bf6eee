package store

import (
	"context"
	"errors"
	"fmt"

	"unfair_dao/sdk"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type accountDoc struct {
	ID   string `bson:"_id"`
	Data []byte `bson:"data"`
}

// Mongo stores one document per account. Commits use a multi-document
// transaction, which needs a replica set deployment.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ sdk.State = &Mongo{}

func OpenMongo(ctx context.Context, uri string, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: %w", err)
	}
	return &Mongo{
		client:     client,
		collection: client.Database(database).Collection("accounts"),
	}, nil
}

func (m *Mongo) Get(ctx context.Context, key string) ([]byte, error) {
	return m.find(ctx, key)
}

func (m *Mongo) find(ctx context.Context, key string) ([]byte, error) {
	var doc accountDoc
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.Data == nil {
		return []byte{}, nil
	}
	return doc.Data, nil
}

func (m *Mongo) Commit(ctx context.Context, batch *sdk.Batch) error {
	sess, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, key := range batch.ExpectKeys() {
			current, err := m.find(sc, key)
			if err != nil {
				return nil, err
			}
			if err := batch.Check(key, current); err != nil {
				return nil, err
			}
		}
		for key := range batch.Deletes {
			if _, err := m.collection.DeleteOne(sc, bson.M{"_id": key}); err != nil {
				return nil, err
			}
		}
		for key, val := range batch.Writes {
			doc := accountDoc{ID: key, Data: val}
			if batch.ExpectsAbsent(key) {
				if _, err := m.collection.InsertOne(sc, doc); err != nil {
					if mongo.IsDuplicateKeyError(err) {
						return nil, batch.ExistsError(key)
					}
					return nil, err
				}
				continue
			}
			opts := options.Replace().SetUpsert(true)
			if _, err := m.collection.ReplaceOne(sc, bson.M{"_id": key}, doc, opts); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

func (m *Mongo) Close() error {
	return m.client.Disconnect(context.Background())
}
