package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/store"
)

type userDocument struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.users.InsertOne(ctx, userDocument{
		ID:           user.ID.String(),
		Email:        user.Email,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicate
	}
	return err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.findUser(ctx, bson.M{"_id": id.String()})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*model.User, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, err
	}
	return &model.User{
		ID:           id,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
		Email:        doc.Email,
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
	}, nil
}
