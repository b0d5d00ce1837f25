package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/mobileriadardania/storefront/internal/domain"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productDocument is the stored shape of a product. Documents written by
// earlier deployments carry an extra __v field which decoding ignores, and
// may hold non-string specification values such as {"width": 200}.
type productDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	Title          string             `bson:"title"`
	Subtitle       string             `bson:"subtitle,omitempty"`
	Description    string             `bson:"description,omitempty"`
	Images         []string           `bson:"images"`
	Category       string             `bson:"category,omitempty"`
	Features       []string           `bson:"features,omitempty"`
	Specifications bson.M             `bson:"specifications,omitempty"`
}

func toDocument(oid primitive.ObjectID, p domain.Product) productDocument {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return productDocument{
		ID:             oid,
		Title:          p.Title,
		Subtitle:       p.Subtitle,
		Description:    p.Description,
		Images:         images,
		Category:       p.Category,
		Features:       p.Features,
		Specifications: specsToDocument(p.Specifications),
	}
}

func specsToDocument(specs map[string]string) bson.M {
	if len(specs) == 0 {
		return nil
	}
	out := make(bson.M, len(specs))
	for k, v := range specs {
		out[k] = v
	}
	return out
}

func specsFromDocument(specs bson.M) map[string]string {
	if len(specs) == 0 {
		return nil
	}
	out := make(map[string]string, len(specs))
	for k, v := range specs {
		s, err := cast.ToStringE(v)
		if err != nil {
			s = fmt.Sprint(v)
		}
		out[k] = s
	}
	return out
}

func fromDocument(doc productDocument) domain.Product {
	p := domain.Product{
		ID:             doc.ID.Hex(),
		Title:          doc.Title,
		Subtitle:       doc.Subtitle,
		Description:    doc.Description,
		Images:         doc.Images,
		Category:       doc.Category,
		Features:       doc.Features,
		Specifications: specsFromDocument(doc.Specifications),
	}
	normalize(&p)
	return p
}

// MongoRepository keeps products in the "products" collection.
type MongoRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ ProductRepository = (*MongoRepository)(nil)

// OpenMongoRepository connects to uri and verifies the server is reachable.
func OpenMongoRepository(ctx context.Context, uri, database string, maxPool int) (*MongoRepository, error) {
	opts := options.Client().ApplyURI(uri)
	if maxPool > 0 {
		opts.SetMaxPoolSize(uint64(maxPool))
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connect mongodb")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping mongodb")
	}
	return NewMongoRepository(client, database), nil
}

// NewMongoRepository wraps an already connected client.
func NewMongoRepository(client *mongo.Client, database string) *MongoRepository {
	return &MongoRepository{
		client: client,
		coll:   client.Database(database).Collection(domain.CollectionName),
	}
}

func (r *MongoRepository) List(ctx context.Context) ([]domain.Product, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer cur.Close(ctx)
	items := make([]domain.Product, 0)
	for cur.Next(ctx) {
		var doc productDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "decode product")
		}
		items = append(items, fromDocument(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return items, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	oid, err := ParseID(id)
	if err != nil {
		return domain.Product{}, err
	}
	var doc productDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Product{}, ErrNotFound
	}
	if err != nil {
		return domain.Product{}, errors.Wrapf(err, "get product %s", id)
	}
	return fromDocument(doc), nil
}

func (r *MongoRepository) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	doc := toDocument(primitive.NewObjectID(), p)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Product{}, errors.Wrap(err, "create product")
	}
	return fromDocument(doc), nil
}

func (r *MongoRepository) Replace(ctx context.Context, id string, p domain.Product) (domain.Product, error) {
	oid, err := ParseID(id)
	if err != nil {
		return domain.Product{}, ErrNotFound
	}
	var doc productDocument
	err = r.coll.FindOneAndReplace(ctx, bson.M{"_id": oid}, toDocument(oid, p),
		options.FindOneAndReplace().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Product{}, ErrNotFound
	}
	if err != nil {
		return domain.Product{}, errors.Wrapf(err, "replace product %s", id)
	}
	return fromDocument(doc), nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrapf(err, "delete product %s", id)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Migrate(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	})
	return errors.Wrap(err, "create category index")
}

func (r *MongoRepository) Drop(ctx context.Context) error {
	return errors.Wrap(r.coll.Drop(ctx), "drop products collection")
}

func (r *MongoRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}
