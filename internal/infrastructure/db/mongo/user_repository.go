package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fittracker/user-service/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository implements ports.UserRepository using MongoDB. Ids are
// opaque UUID strings assigned here on first save.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// mongoUser is the persisted document shape, kept separate from the domain
// entity so the storage schema is not coupled to internal changes.
type mongoUser struct {
	ID        string `bson:"_id"`
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	Birthdate string `bson:"birthdate"`
	Email     string `bson:"email"`
}

func toDocument(u *domain.User) mongoUser {
	return mongoUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Birthdate: u.Birthdate.String(),
		Email:     u.Email,
	}
}

func (d mongoUser) toDomain() (*domain.User, error) {
	birthdate, err := domain.ParseDate(d.Birthdate)
	if err != nil {
		return nil, fmt.Errorf("decode user %s: %w", d.ID, err)
	}
	return &domain.User{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Birthdate: birthdate,
		Email:     d.Email,
	}, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoUser
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return doc.toDomain()
}

// FindByEmail performs an exact, case-sensitive match.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoUser
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return doc.toDomain()
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find all users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]*domain.User, 0)
	for cursor.Next(ctx) {
		var doc mongoUser
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		u, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// Save inserts the user under a fresh UUID when no id is set, otherwise
// replaces the existing document. A write rejected by the unique email index
// maps to domain.DuplicateEmailError, so racing writers still observe the
// invariant.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	persisted := *user
	if persisted.ID == "" {
		persisted.ID = uuid.NewString()
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": persisted.ID}, toDocument(&persisted), opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.DuplicateEmailError{Email: persisted.Email}
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	return &persisted, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index. It closes the
// check-then-save race: two concurrent creates with the same email cannot
// both commit.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
