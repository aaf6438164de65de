package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/gatormarket/backend/internal/ident"
	"github.com/gatormarket/backend/internal/models"
	"github.com/gatormarket/backend/internal/storage"
	"github.com/gatormarket/backend/internal/validate"
)

type MongoListingService struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewMongoListingService(db *mongo.Database, log *zap.Logger) *MongoListingService {
	return &MongoListingService{
		coll: db.Collection(storage.ListingsCollection),
		log:  log,
	}
}

func (s *MongoListingService) Create(ctx context.Context, in models.ListingInput) (string, error) {
	doc, err := validate.Listing(in)
	if err != nil {
		return "", err
	}
	doc.ID = ident.NewID()
	doc.CreatedAt = ident.Now()
	doc.SoldAt = nil

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	s.log.Debug("listing created",
		zap.String("id", doc.ID),
		zap.String("type", doc.Type),
		zap.String("user", doc.User))
	return doc.ID, nil
}

func (s *MongoListingService) Get(ctx context.Context, id string) (*models.Listing, error) {
	var doc models.Listing
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (s *MongoListingService) List(ctx context.Context, opts ListListingsOptions) ([]models.Listing, error) {
	filter := bson.M{}
	if opts.Type != "" {
		t, err := validate.ListingType(opts.Type)
		if err != nil {
			return nil, err
		}
		filter["type"] = t
	}
	if u := strings.TrimSpace(opts.User); u != "" {
		filter["user"] = u
	}
	if !opts.IncludeSold {
		filter["soldat"] = nil
	}

	limit := clampLimit(opts.Limit, MaxListingPageSize)
	cur, err := s.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	listings := make([]models.Listing, 0)
	if err := cur.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *MongoListingService) Update(ctx context.Context, id string, patch models.ListingPatch) (bool, error) {
	set, err := validate.ListingPatch(patch)
	if err != nil {
		return false, err
	}
	if len(set) == 0 {
		// Nothing valid to apply; not an error.
		return false, nil
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *MongoListingService) MarkSold(ctx context.Context, id string) (bool, error) {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"soldat": ident.Now()}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *MongoListingService) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}
