package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

const collectionActivity = "activity_events"

// ActivityRepository appends processed activity events to the audit trail.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

type activityDoc struct {
	EventID    string    `bson:"event_id"`
	SessionID  string    `bson:"session_id"`
	IdentityID string    `bson:"identity_id,omitempty"`
	Kind       string    `bson:"kind"`
	Path       string    `bson:"path,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// Insert persists one event.
func (r *ActivityRepository) Insert(ctx context.Context, event *domain.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, activityDoc{
		EventID:    event.ID,
		SessionID:  event.SessionID,
		IdentityID: event.IdentityID,
		Kind:       string(event.Kind),
		Path:       event.Path,
		OccurredAt: event.OccurredAt,
		RecordedAt: time.Now().UTC(),
	})
	return err
}

// EnsureIndexes creates the lookup indexes on the activity collection.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "occurred_at", Value: 1}}},
		{Keys: bson.D{{Key: "identity_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
