package preset

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
)

// MongoStore persists presets in a MongoDB collection, keyed by name.
// The API server uses it so every replica serves the same preset catalog.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore connects to MongoDB and uses the presets collection of the
// given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}
	return &MongoStore{coll: client.Database(database).Collection("presets")}, nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (Preset, error) {
	if err := errors.ValidatePresetName(name); err != nil {
		return Preset{}, err
	}

	var p Preset
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return Preset{}, errors.New(errors.ErrCodePresetNotFound, "preset %q not found", name)
	}
	if err != nil {
		return Preset{}, errors.Wrap(errors.ErrCodeNetwork, err, "fetch preset %q", name)
	}
	return p, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Preset, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "list presets")
	}
	defer cur.Close(ctx)

	var presets []Preset
	if err := cur.All(ctx, &presets); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "decode presets")
	}
	return presets, nil
}

func (s *MongoStore) Save(ctx context.Context, p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.Name}, p,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "save preset %q", p.Name)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidatePresetName(name); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "delete preset %q", name)
	}
	return nil
}

var _ Store = (*MongoStore)(nil)
