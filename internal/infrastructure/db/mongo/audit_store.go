package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

const collectionSignInEvents = "signin_events"

// auditRetention bounds how long sign-in attempts stay queryable.
const auditRetention = 90 * 24 * time.Hour

// AuditStore persists sign-in audit events.
type AuditStore struct {
	db *mongo.Database
}

func NewAuditStore(db *mongo.Database) *AuditStore {
	return &AuditStore{db: db}
}

func (s *AuditStore) Record(ctx context.Context, event domain.SignInEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"email":     event.Email,
		"outcome":   event.Outcome,
		"reason":    event.Reason,
		"timestamp": event.Timestamp.UTC(),
	}
	if event.UserID != 0 {
		doc["user_id"] = event.UserID
	}
	if event.RemoteIP != "" {
		doc["remote_ip"] = event.RemoteIP
	}

	if _, err := s.db.Collection(collectionSignInEvents).InsertOne(ctx, doc); err != nil {
		return domain.NewRepositoryError("insert signin event", err)
	}
	return nil
}

// EnsureIndexes creates the lookup index and the retention TTL.
func (s *AuditStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "timestamp", Value: -1}}},
		{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(auditRetention / time.Second)),
		},
	}
	_, err := s.db.Collection(collectionSignInEvents).Indexes().CreateMany(ctx, indexes)
	return err
}
