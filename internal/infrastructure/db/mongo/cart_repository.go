package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

const collectionCarts = "carts"

// CartRepository stores one cart document per identity.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(collectionCarts)}
}

// FindByIdentity retrieves the cart for an identity. A missing document
// maps to domain.ErrNotFound; the service layer treats that as an empty
// cart.
func (r *CartRepository) FindByIdentity(ctx context.Context, identityID string) (*domain.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cart domain.Cart
	err := r.col.FindOne(ctx, bson.M{"identity_id": identityID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// Save upserts the identity's cart document.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cart.UpdatedAt = time.Now().UTC()
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"identity_id": cart.IdentityID},
		cart,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Delete removes the identity's cart. No-op when none exists.
func (r *CartRepository) Delete(ctx context.Context, identityID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"identity_id": identityID})
	return err
}

// EnsureIndexes creates the unique per-identity index on the carts
// collection.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "identity_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
