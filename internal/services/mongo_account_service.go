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

type MongoAccountService struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewMongoAccountService(db *mongo.Database, log *zap.Logger) *MongoAccountService {
	return &MongoAccountService{
		coll: db.Collection(storage.AccountsCollection),
		log:  log,
	}
}

func (s *MongoAccountService) Create(ctx context.Context, in models.AccountInput) (string, error) {
	doc, err := validate.Account(in)
	if err != nil {
		return "", err
	}
	doc.ID = ident.NewID()
	doc.CreatedAt = ident.Now()

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrAccountExists
		}
		return "", err
	}
	s.log.Debug("account created", zap.String("id", doc.ID), zap.String("username", doc.Username))
	return doc.ID, nil
}

func (s *MongoAccountService) Get(ctx context.Context, id string) (*models.Account, error) {
	var doc models.Account
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (s *MongoAccountService) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var doc models.Account
	filter := bson.M{"username": strings.TrimSpace(username)}
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (s *MongoAccountService) List(ctx context.Context, opts ListAccountsOptions) ([]models.Account, error) {
	limit := clampLimit(opts.Limit, MaxListingPageSize)
	cur, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	accounts := make([]models.Account, 0)
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *MongoAccountService) Update(ctx context.Context, id string, patch models.AccountPatch) (bool, error) {
	set, err := validate.AccountPatch(patch)
	if err != nil {
		return false, err
	}
	if len(set) == 0 {
		return false, nil
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, ErrAccountExists
		}
		return false, err
	}
	return res.MatchedCount == 1, nil
}

// Deactivate is the one-way active=false transition. There is no
// reactivate shortcut; an admin can flip the flag back through Update.
func (s *MongoAccountService) Deactivate(ctx context.Context, id string) (bool, error) {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"isactive": false}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *MongoAccountService) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}
