// Package mongo reads organization trees from a MongoDB collection.
//
// Documents in the organizations collection use the same field names as the
// ANET GraphQL API (see pkg/org), including the denormalized ascendantOrgs
// chain, so a subtree is one indexed query on ascendantOrgs.uuid.
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/org"
	"github.com/NCI-Agency/anet-orgchart/pkg/source"
)

const (
	// DefaultDatabase is used when the connection string names none.
	DefaultDatabase = "anet"
	// Collection holds one document per organization.
	Collection = "organizations"

	connectTimeout = 5 * time.Second
)

// Store is a [source.Source] backed by MongoDB.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
	db     string
}

// Open connects to the MongoDB server at uri and pings it.
// An empty database selects [DefaultDatabase].
func Open(ctx context.Context, uri, database string) (*Store, error) {
	if database == "" {
		database = DefaultDatabase
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "connect to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}
	return NewStore(client, database), nil
}

// NewStore wraps an existing client.
func NewStore(client *mongo.Client, database string) *Store {
	return &Store{
		client: client,
		coll:   client.Database(database).Collection(Collection),
		db:     database,
	}
}

func (s *Store) Name() string { return "mongo:" + s.db }

// Fetch loads the root document and every document listing it as an
// ascendant, ordered by short name then uuid.
func (s *Store) Fetch(ctx context.Context, orgUUID string) (*org.Tree, error) {
	if err := source.ValidateOrgUUID(orgUUID); err != nil {
		return nil, err
	}

	var root org.Organization
	if err := s.coll.FindOne(ctx, bson.M{"uuid": orgUUID}).Decode(&root); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New(errors.ErrCodeOrgNotFound, "organization %s not found", orgUUID)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "find organization %s", orgUUID)
	}

	filter := bson.M{
		"ascendantOrgs.uuid": orgUUID,
		"uuid":               bson.M{"$ne": orgUUID},
	}
	opts := options.Find().SetSort(bson.D{{Key: "shortName", Value: 1}, {Key: "uuid", Value: 1}})
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "find descendants of %s", orgUUID)
	}
	descendants := []org.Organization{}
	if err := cur.All(ctx, &descendants); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "decode descendants of %s", orgUUID)
	}

	return &org.Tree{Root: root, Descendants: descendants}, nil
}

// Save upserts every organization of tree, keyed by uuid. Records without
// an ascendant chain get one derived from their parent links.
func (s *Store) Save(ctx context.Context, tree *org.Tree) error {
	if err := tree.Validate(); err != nil {
		return err
	}
	idx := tree.Index()
	models := make([]mongo.WriteModel, 0, tree.Size())
	upsert := func(o org.Organization) {
		if len(o.AscendantOrgs) == 0 {
			o.AscendantOrgs = idx.Ascendants(o.UUID)
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"uuid": o.UUID}).
			SetReplacement(o).
			SetUpsert(true))
	}
	upsert(tree.Root)
	for _, d := range tree.Descendants {
		upsert(d)
	}
	if _, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "save %d organizations", len(models))
	}
	return nil
}

// EnsureIndexes creates the indexes Fetch relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "uuid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ascendantOrgs.uuid", Value: 1}, {Key: "shortName", Value: 1}}},
	})
	return err
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ source.Source = (*Store)(nil)
