package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/chromatic/pkg/csf"
)

// DefaultDatabase is used when Config.Database is empty.
const DefaultDatabase = "chromatic"

const recordsCollection = "records"

// MongoStore keeps records in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoRecord is the stored document. The table is kept as its JSON
// encoding because partition keys are not valid field names in every
// MongoDB version.
type mongoRecord struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name,omitempty"`
	Graph6    string    `bson:"graph6"`
	Canonical string    `bson:"canonical"`
	Order     int       `bson:"order"`
	Size      int       `bson:"size"`
	TableKey  string    `bson:"table_key"`
	Table     string    `bson:"table"`
	CreatedAt time.Time `bson:"created_at"`
}

func toMongo(r *Record) (mongoRecord, error) {
	table, err := json.Marshal(r.Table)
	if err != nil {
		return mongoRecord{}, err
	}
	return mongoRecord{
		ID:        r.ID,
		Name:      r.Name,
		Graph6:    r.Graph6,
		Canonical: r.Canonical,
		Order:     r.Order,
		Size:      r.Size,
		TableKey:  r.TableKey,
		Table:     string(table),
		CreatedAt: r.CreatedAt,
	}, nil
}

func (m mongoRecord) record() (*Record, error) {
	t := new(csf.Table)
	if err := json.Unmarshal([]byte(m.Table), t); err != nil {
		return nil, fmt.Errorf("decode table of %s: %w", m.ID, err)
	}
	return &Record{
		ID:        m.ID,
		Name:      m.Name,
		Graph6:    m.Graph6,
		Canonical: m.Canonical,
		Order:     m.Order,
		Size:      m.Size,
		TableKey:  m.TableKey,
		Table:     t,
		CreatedAt: m.CreatedAt.UTC(),
	}, nil
}

// OpenMongo connects to uri and ensures the catalog indexes exist.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(database).Collection(recordsCollection)
	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "canonical", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "table_key", Value: 1}}},
		{Keys: bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create indexes: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Put(ctx context.Context, r *Record) error {
	doc, err := toMongo(r)
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": r.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*Record, error) {
	var doc mongoRecord
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.record()
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoStore) FindByCanonical(ctx context.Context, canonical string) (*Record, error) {
	return s.findOne(ctx, bson.M{"canonical": canonical})
}

func (s *MongoStore) FindByTable(ctx context.Context, key string) ([]*Record, error) {
	return s.find(ctx, bson.M{"table_key": key}, 0)
}

func (s *MongoStore) List(ctx context.Context, f Filter) ([]*Record, error) {
	return s.find(ctx, mongoFilter(f), f.Limit)
}

func mongoFilter(f Filter) bson.M {
	filter := bson.M{}
	if f.Order > 0 {
		filter["order"] = f.Order
	}
	if f.Name != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Name), Options: "i"}
	}
	return filter
}

func (s *MongoStore) find(ctx context.Context, filter bson.M, limit int) ([]*Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []mongoRecord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*Record, 0, len(docs))
	for _, d := range docs {
		r, err := d.record()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
