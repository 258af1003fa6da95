package staff

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

const CollectionName = "staff"

// Default is the front-desk member seeded into a fresh database.
var Default = model.Staff{
	Name:  "John Doe",
	Email: "john.doe@example.com",
	Role:  "Front Desk",
}

var ErrDuplicateEmail = errors.New("staff email already exists")

type Repository interface {
	FindAll(ctx context.Context) ([]model.Staff, error)
	Create(ctx context.Context, member *model.Staff) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type mongoRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	sequencer  mongotx.Sequencer
}

func NewMongoRepository(cfg *config.Config) Repository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		sequencer:  mongotx.NewSequencer(db, cfg.WriteTimeout),
	}
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]model.Staff, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer cursor.Close(ctx)

	members := []model.Staff{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode staff: %w", err)
	}
	return members, nil
}

func (r *mongoRepository) Create(ctx context.Context, member *model.Staff) error {
	id, err := r.sequencer.NextID(ctx, CollectionName)
	if err != nil {
		return err
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	member.ID = id
	member.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, member); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create staff member: %w", err)
	}
	return nil
}

func (r *mongoRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check staff email: %w", err)
	}
	return count > 0, nil
}

// Seed inserts the default member unless a member with that email exists.
func Seed(ctx context.Context, repo Repository) (bool, error) {
	exists, err := repo.ExistsByEmail(ctx, Default.Email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	member := Default
	if err := repo.Create(ctx, &member); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
