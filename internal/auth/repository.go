package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelbooking/pkg/config"
	mongotx "hotelbooking/pkg/db/mongo"
	"hotelbooking/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection  = "users"
	TokensCollection = "personal_access_tokens"
)

var (
	ErrTokenNotFound = errors.New("api token not found")
	ErrUserNotFound  = errors.New("user not found")
)

type TokenRepository interface {
	FindByHash(ctx context.Context, hash string) (*model.APIToken, error)
	Create(ctx context.Context, token *model.APIToken) error
	TouchLastUsed(ctx context.Context, id int64, at time.Time) error
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}

type mongoTokenRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	sequencer  mongotx.Sequencer
}

func NewMongoTokenRepository(cfg *config.Config) TokenRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTokenRepository{
		cfg:        cfg,
		collection: db.Collection(TokensCollection),
		sequencer:  mongotx.NewSequencer(db, cfg.WriteTimeout),
	}
}

func (r *mongoTokenRepository) FindByHash(ctx context.Context, hash string) (*model.APIToken, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var token model.APIToken
	if err := r.collection.FindOne(ctx, bson.M{"token": hash}).Decode(&token); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to find api token: %w", err)
	}
	return &token, nil
}

func (r *mongoTokenRepository) Create(ctx context.Context, token *model.APIToken) error {
	id, err := r.sequencer.NextID(ctx, TokensCollection)
	if err != nil {
		return err
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	token.ID = id
	token.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, token); err != nil {
		return fmt.Errorf("failed to create api token: %w", err)
	}
	return nil
}

func (r *mongoTokenRepository) TouchLastUsed(ctx context.Context, id int64, at time.Time) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_used_at": at.UTC().Truncate(time.Millisecond)}},
	)
	if err != nil {
		return fmt.Errorf("failed to update api token: %w", err)
	}
	return nil
}

type mongoUserRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	sequencer  mongotx.Sequencer
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUserRepository{
		cfg:        cfg,
		collection: db.Collection(UsersCollection),
		sequencer:  mongotx.NewSequencer(db, cfg.WriteTimeout),
	}
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}, options.FindOne()).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	id, err := r.sequencer.NextID(ctx, UsersCollection)
	if err != nil {
		return err
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	user.ID = id
	user.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
