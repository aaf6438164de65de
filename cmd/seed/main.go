// Command seed populates a development database with demo accounts and
// listings, or wipes the collections with -mode truncate.
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/gatormarket/backend/internal/config"
	"github.com/gatormarket/backend/internal/models"
	"github.com/gatormarket/backend/internal/services"
	"github.com/gatormarket/backend/internal/storage"
)

var seedAccounts = []models.AccountInput{
	{Username: "alice", Password: "password123", Email: "alice@sfsu.edu"},
	{Username: "bob", Password: "password123", Email: "bob@sfsu.edu"},
	{Username: "charlie", Password: "password123", Email: "charlie@sfsu.edu"},
}

var seedListings = []models.ListingInput{
	{Type: "item", Title: "CSC 415 textbook, barely used", Price: 45, ImageKey: "uploads/seed-textbook.jpg", User: "alice"},
	{Type: "item", Title: "Mini fridge, works great", Price: 60, ImageKey: "uploads/seed-fridge.jpg", User: "alice"},
	{Type: "item", Title: "Desk lamp with USB port", Price: 12, ImageKey: "uploads/seed-lamp.jpg", User: "bob"},
	{Type: "item", Title: "TI-84 calculator", Price: 55, ImageKey: "uploads/seed-calculator.jpg", User: "bob"},
	{Type: "item", Title: "Longboard, some scratches", Price: 40, ImageKey: "uploads/seed-longboard.jpg", User: "charlie"},
	{Type: "item", Title: "Dorm-size microwave", Price: 30, ImageKey: "uploads/seed-microwave.jpg", User: "charlie"},
	{Type: "item", Title: "Noise-cancelling headphones", Price: 80, ImageKey: "uploads/seed-headphones.jpg", User: "alice"},
	{Type: "request", Title: "Looking for a bike lock", Price: 15, User: "bob"},
	{Type: "request", Title: "Need a ride to SFO on Friday", Price: 20, User: "charlie"},
	{Type: "request", Title: "Anyone selling a monitor stand?", Price: 10, User: "alice"},
}

func main() {
	mode := flag.String("mode", "seed", "seed or truncate")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := storage.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("connect to mongo", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB)

	switch *mode {
	case "truncate":
		for _, name := range []string{storage.AccountsCollection, storage.ListingsCollection, storage.MessagesCollection} {
			res, err := db.Collection(name).DeleteMany(ctx, bson.M{})
			if err != nil {
				log.Fatal("truncate collection", zap.String("collection", name), zap.Error(err))
			}
			log.Info("truncated", zap.String("collection", name), zap.Int64("deleted", res.DeletedCount))
		}
	case "seed":
		if err := storage.EnsureIndexes(ctx, db); err != nil {
			log.Fatal("ensure indexes", zap.Error(err))
		}

		accounts := services.NewMongoAccountService(db, log)
		listings := services.NewMongoListingService(db, log)

		for _, in := range seedAccounts {
			id, err := accounts.Create(ctx, in)
			if errors.Is(err, services.ErrAccountExists) {
				log.Info("account already exists", zap.String("username", in.Username))
				continue
			}
			if err != nil {
				log.Fatal("seed account", zap.String("username", in.Username), zap.Error(err))
			}
			log.Info("account created", zap.String("username", in.Username), zap.String("id", id))
		}

		for _, in := range seedListings {
			id, err := listings.Create(ctx, in)
			if err != nil {
				log.Fatal("seed listing", zap.String("title", in.Title), zap.Error(err))
			}
			log.Info("listing created", zap.String("title", in.Title), zap.String("id", id))
		}
	default:
		log.Fatal("unknown mode", zap.String("mode", *mode))
	}
}
