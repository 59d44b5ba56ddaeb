package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

const (
	collectionUsers     = "users"
	collectionUserRoles = "user_roles"
	sequenceUsers       = "users"
)

// UserStore implements ports.UserStore using MongoDB.
type UserStore struct {
	db *mongo.Database
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{db: db}
}

type userDoc struct {
	ID           int64     `bson:"_id"`
	UserName     string    `bson:"user_name"`
	Email        string    `bson:"email"`
	EmailLower   string    `bson:"email_lower"`
	PhoneNumber  string    `bson:"phone_number,omitempty"`
	PasswordHash string    `bson:"password_hash"`
	DateCreated  time.Time `bson:"date_created"`
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		UserName:     d.UserName,
		Email:        d.Email,
		PhoneNumber:  d.PhoneNumber,
		PasswordHash: d.PasswordHash,
		DateCreated:  d.DateCreated,
	}
}

// CreateUser inserts a new identity record with the next sequence id. A
// duplicate email surfaces as domain.ErrEmailExists via the unique index on
// email_lower.
func (s *UserStore) CreateUser(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, s.db, sequenceUsers)
	if err != nil {
		return nil, domain.NewRepositoryError("next user id", err)
	}

	doc := userDoc{
		ID:           id,
		UserName:     user.UserName,
		Email:        user.Email,
		EmailLower:   strings.ToLower(user.Email),
		PhoneNumber:  user.PhoneNumber,
		PasswordHash: passwordHash,
		DateCreated:  time.Now().UTC(),
	}

	if _, err := s.db.Collection(collectionUsers).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, domain.NewRepositoryError("insert user", err)
	}
	return doc.toDomain(), nil
}

func (s *UserStore) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	err := s.db.Collection(collectionUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewRepositoryError("find user by id", err)
	}
	return doc.toDomain(), nil
}

// GetUserByEmail looks a user up case-insensitively.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	err := s.db.Collection(collectionUsers).FindOne(ctx, bson.M{"email_lower": strings.ToLower(email)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewRepositoryError("find user by email", err)
	}
	return doc.toDomain(), nil
}

// GetUsers returns every user with its role names attached. The join runs as
// three reads stitched in memory; the collections are small enough that an
// aggregation pipeline would buy nothing.
func (s *UserStore) GetUsers(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.db.Collection(collectionUsers).Find(ctx, bson.M{})
	if err != nil {
		return nil, domain.NewRepositoryError("list users", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.NewRepositoryError("decode users", err)
	}

	roleNames, err := s.roleNamesByUser(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		u := d.toDomain()
		u.PasswordHash = ""
		u.Roles = roleNames[d.ID]
		users = append(users, *u)
	}
	return users, nil
}

func (s *UserStore) roleNamesByUser(ctx context.Context) (map[int64][]string, error) {
	linkCur, err := s.db.Collection(collectionUserRoles).Find(ctx, bson.M{})
	if err != nil {
		return nil, domain.NewRepositoryError("list user roles", err)
	}
	var links []userRoleDoc
	if err := linkCur.All(ctx, &links); err != nil {
		return nil, domain.NewRepositoryError("decode user roles", err)
	}

	roleCur, err := s.db.Collection(collectionRoles).Find(ctx, bson.M{})
	if err != nil {
		return nil, domain.NewRepositoryError("list roles", err)
	}
	var roles []roleDoc
	if err := roleCur.All(ctx, &roles); err != nil {
		return nil, domain.NewRepositoryError("decode roles", err)
	}

	names := make(map[int64]string, len(roles))
	for _, r := range roles {
		names[r.ID] = r.Name
	}

	byUser := make(map[int64][]string)
	for _, l := range links {
		if name, ok := names[l.RoleID]; ok {
			byUser[l.UserID] = append(byUser[l.UserID], name)
		}
	}
	return byUser, nil
}

// UpdateUser overwrites the mutable fields and returns the updated record.
func (s *UserStore) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"email":        user.Email,
		"email_lower":  strings.ToLower(user.Email),
		"phone_number": user.PhoneNumber,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDoc
	err := s.db.Collection(collectionUsers).
		FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, update, opts).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewRepositoryError("update user", err)
	}
	return doc.toDomain(), nil
}

// DeleteUser removes the record and its role links; the deleted count is the
// success signal.
func (s *UserStore) DeleteUser(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.Collection(collectionUsers).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, domain.NewRepositoryError("delete user", err)
	}
	if res.DeletedCount == 0 {
		return false, nil
	}
	if _, err := s.db.Collection(collectionUserRoles).DeleteMany(ctx, bson.M{"user_id": id}); err != nil {
		return false, domain.NewRepositoryError("detach user roles", err)
	}
	return true, nil
}

func (s *UserStore) ResetPassword(ctx context.Context, id int64, passwordHash string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.Collection(collectionUsers).UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password_hash": passwordHash}},
	)
	if err != nil {
		return false, domain.NewRepositoryError("reset password", err)
	}
	return res.MatchedCount > 0, nil
}

// EnsureIndexes creates the uniqueness constraints the managers rely on.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.db.Collection(collectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email_lower", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
