package content

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// MongoConfig locates the collection holding case studies.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string

	// Timeout bounds connecting and each query. Default: 10s.
	Timeout time.Duration
}

// mongoDocument is the stored shape of one case study.
type mongoDocument struct {
	Slug      string    `bson:"slug"`
	Source    string    `bson:"source"`
	Draft     bool      `bson:"draft"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoSource reads documents from a MongoDB collection, one document per
// case study with the raw file text in its "source" field.
type MongoSource struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoSource connects and pings the primary.
func NewMongoSource(ctx context.Context, cfg MongoConfig) (*MongoSource, error) {
	if cfg.URI == "" || cfg.Database == "" || cfg.Collection == "" {
		return nil, perrors.New(perrors.ErrCodeInvalidConfig, "mongo source needs uri, database and collection")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI).SetConnectTimeout(cfg.Timeout))
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "connect mongo")
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "ping mongo")
	}

	return &MongoSource{
		client:  client,
		coll:    client.Database(cfg.Database).Collection(cfg.Collection),
		timeout: cfg.Timeout,
	}, nil
}

// Name returns "mongo:<db>.<collection>".
func (s *MongoSource) Name() string {
	return "mongo:" + s.coll.Database().Name() + "." + s.coll.Name()
}

// Slugs lists non-draft slugs in ascending order.
func (s *MongoSource) Slugs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"slug": 1}).
		SetSort(bson.D{{Key: "slug", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{"draft": bson.M{"$ne": true}}, opts)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "list %s", s.Name())
	}

	var docs []mongoDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "list %s", s.Name())
	}
	slugs := make([]string, 0, len(docs))
	for _, d := range docs {
		slugs = append(slugs, d.Slug)
	}
	return slugs, nil
}

// Read returns the source text of slug. Drafts are reported as missing.
func (s *MongoSource) Read(ctx context.Context, slug string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var d mongoDocument
	err := s.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && d.Draft) {
		return nil, perrors.New(perrors.ErrCodeDocumentNotFound, "no case study %q in %s", slug, s.Name())
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "read %q", slug)
	}
	return []byte(d.Source), nil
}

// Put stores raw under slug, replacing any existing document.
func (s *MongoSource) Put(ctx context.Context, slug string, raw []byte, draft bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"source":     string(raw),
		"draft":      draft,
		"updated_at": time.Now().UTC(),
	}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"slug": slug}, update, options.Update().SetUpsert(true))
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "put %q", slug)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Source = (*MongoSource)(nil)
