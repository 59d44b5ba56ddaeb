package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

const (
	collectionRoles = "roles"
	sequenceRoles   = "roles"
)

// RoleStore implements ports.RoleStore using MongoDB. User-role links live in
// their own collection with a unique (user_id, role_id) index, which is what
// makes repeated assignment a no-op instead of a duplicate.
type RoleStore struct {
	db *mongo.Database
}

func NewRoleStore(db *mongo.Database) *RoleStore {
	return &RoleStore{db: db}
}

type roleDoc struct {
	ID          int64     `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	DateCreated time.Time `bson:"date_created"`
}

type userRoleDoc struct {
	UserID int64 `bson:"user_id"`
	RoleID int64 `bson:"role_id"`
}

func (d roleDoc) toDomain() *domain.Role {
	return &domain.Role{ID: d.ID, Name: d.Name, Description: d.Description, DateCreated: d.DateCreated}
}

func (s *RoleStore) GetRoles(ctx context.Context) ([]domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.db.Collection(collectionRoles).Find(ctx, bson.M{})
	if err != nil {
		return nil, domain.NewRepositoryError("list roles", err)
	}
	var docs []roleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.NewRepositoryError("decode roles", err)
	}

	roles := make([]domain.Role, 0, len(docs))
	for _, d := range docs {
		roles = append(roles, *d.toDomain())
	}
	return roles, nil
}

// GetUserRoles returns the role names linked to a user; an unknown user
// yields an empty slice.
func (s *RoleStore) GetUserRoles(ctx context.Context, userID int64) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.db.Collection(collectionUserRoles).Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, domain.NewRepositoryError("find user role links", err)
	}
	var links []userRoleDoc
	if err := cur.All(ctx, &links); err != nil {
		return nil, domain.NewRepositoryError("decode user role links", err)
	}
	if len(links) == 0 {
		return []string{}, nil
	}

	ids := make([]int64, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.RoleID)
	}

	roleCur, err := s.db.Collection(collectionRoles).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, domain.NewRepositoryError("find linked roles", err)
	}
	var docs []roleDoc
	if err := roleCur.All(ctx, &docs); err != nil {
		return nil, domain.NewRepositoryError("decode linked roles", err)
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	return names, nil
}

func (s *RoleStore) FindRoleByID(ctx context.Context, roleID int64) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc roleDoc
	err := s.db.Collection(collectionRoles).FindOne(ctx, bson.M{"_id": roleID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, domain.NewRepositoryError("find role by id", err)
	}
	return doc.toDomain(), nil
}

// AddUserToRole links a user to a role via upsert: linking an already-linked
// pair matches the existing document and succeeds without writing a second
// one.
func (s *RoleStore) AddUserToRole(ctx context.Context, userID, roleID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := s.db.Collection(collectionRoles).CountDocuments(ctx, bson.M{"_id": roleID})
	if err != nil {
		return false, domain.NewRepositoryError("check role exists", err)
	}
	if n == 0 {
		return false, nil
	}

	filter := bson.M{"user_id": userID, "role_id": roleID}
	update := bson.M{"$setOnInsert": bson.M{"user_id": userID, "role_id": roleID}}
	if _, err := s.db.Collection(collectionUserRoles).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		// A concurrent assignment of the same pair trips the unique index;
		// the link exists either way.
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, domain.NewRepositoryError("link user to role", err)
	}
	return true, nil
}

func (s *RoleStore) CreateRole(ctx context.Context, name, description string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, s.db, sequenceRoles)
	if err != nil {
		return false, domain.NewRepositoryError("next role id", err)
	}

	doc := roleDoc{ID: id, Name: name, Description: description, DateCreated: time.Now().UTC()}
	if _, err := s.db.Collection(collectionRoles).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, domain.ErrRoleExists
		}
		return false, domain.NewRepositoryError("insert role", err)
	}
	return true, nil
}

func (s *RoleStore) UpdateRole(ctx context.Context, roleID int64, name, description string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.Collection(collectionRoles).UpdateOne(
		ctx,
		bson.M{"_id": roleID},
		bson.M{"$set": bson.M{"name": name, "description": description}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, domain.ErrRoleExists
		}
		return false, domain.NewRepositoryError("update role", err)
	}
	return res.MatchedCount > 0, nil
}

// DeleteRole removes the role document and every link pointing at it, so a
// deleted role can never linger in a user's role list.
func (s *RoleStore) DeleteRole(ctx context.Context, roleID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.Collection(collectionRoles).DeleteOne(ctx, bson.M{"_id": roleID})
	if err != nil {
		return false, domain.NewRepositoryError("delete role", err)
	}
	if res.DeletedCount == 0 {
		return false, nil
	}
	if _, err := s.db.Collection(collectionUserRoles).DeleteMany(ctx, bson.M{"role_id": roleID}); err != nil {
		return false, domain.NewRepositoryError("detach role links", err)
	}
	return true, nil
}

// EnsureIndexes creates the uniqueness constraints for role names and links.
func (s *RoleStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.db.Collection(collectionRoles).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	_, err := s.db.Collection(collectionUserRoles).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "role_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
