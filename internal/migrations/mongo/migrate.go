package mongo

import (
	"context"
	"fmt"

	"hotelbooking/internal/auth"
	bookingsrepo "hotelbooking/internal/bookings/repository"
	customersrepo "hotelbooking/internal/customers/repository"
	"hotelbooking/internal/migrations/mongo/validators"
	paymentsrepo "hotelbooking/internal/payments/repository"
	roomsrepo "hotelbooking/internal/rooms/repository"
	"hotelbooking/internal/staff"
	"hotelbooking/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collection struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func unique(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}

func ascending(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
}

// Collections lists every collection the API owns, in creation order.
var Collections = []Collection{
	{
		Name:      roomsrepo.CollectionName,
		Indexes:   []mongo.IndexModel{unique("number"), ascending("status")},
		Validator: validators.RoomValidator,
	},
	{
		Name:      customersrepo.CollectionName,
		Indexes:   []mongo.IndexModel{unique("email")},
		Validator: validators.CustomerValidator,
	},
	{
		Name:      bookingsrepo.CollectionName,
		Indexes:   []mongo.IndexModel{ascending("room_id"), ascending("customer_id")},
		Validator: validators.BookingValidator,
	},
	{
		Name:      paymentsrepo.CollectionName,
		Indexes:   []mongo.IndexModel{ascending("booking_id")},
		Validator: validators.PaymentValidator,
	},
	{
		Name:      staff.CollectionName,
		Indexes:   []mongo.IndexModel{unique("email")},
		Validator: validators.StaffValidator,
	},
	{
		Name:      auth.UsersCollection,
		Indexes:   []mongo.IndexModel{unique("email")},
		Validator: validators.UserValidator,
	},
	{
		Name:      auth.TokensCollection,
		Indexes:   []mongo.IndexModel{unique("token"), ascending("user_id")},
		Validator: validators.APITokenValidator,
	},
}

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range Collections {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
