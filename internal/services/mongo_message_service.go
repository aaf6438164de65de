package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/gatormarket/backend/internal/ident"
	"github.com/gatormarket/backend/internal/models"
	"github.com/gatormarket/backend/internal/storage"
	"github.com/gatormarket/backend/internal/validate"
)

// MongoMessageService owns the messages collection and reads listings and
// accounts to enrich conversation previews.
type MongoMessageService struct {
	messages *mongo.Collection
	listings *mongo.Collection
	accounts *mongo.Collection
	log      *zap.Logger
}

func NewMongoMessageService(db *mongo.Database, log *zap.Logger) *MongoMessageService {
	return &MongoMessageService{
		messages: db.Collection(storage.MessagesCollection),
		listings: db.Collection(storage.ListingsCollection),
		accounts: db.Collection(storage.AccountsCollection),
		log:      log,
	}
}

func (s *MongoMessageService) Create(ctx context.Context, in models.MessageInput) (string, error) {
	doc, err := validate.Message(in)
	if err != nil {
		return "", err
	}
	doc.ID = ident.NewID()
	doc.Timestamp = ident.Now()

	if _, err := s.messages.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	s.log.Debug("message created",
		zap.String("id", doc.ID),
		zap.String("conversation", doc.ConversationID))
	return doc.ID, nil
}

func (s *MongoMessageService) Get(ctx context.Context, id string) (*models.Message, error) {
	var doc models.Message
	if err := s.messages.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (s *MongoMessageService) List(ctx context.Context, opts ListMessagesOptions) ([]models.Message, error) {
	filter := bson.M{}
	if opts.ConversationID != "" {
		filter["conversationid"] = opts.ConversationID
	}
	if opts.ListingID != "" {
		filter["listingid"] = opts.ListingID
	}

	limit := clampLimit(opts.Limit, MaxMessagePageSize)
	cur, err := s.messages.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	msgs := make([]models.Message, 0)
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead is the one-way read transition.
func (s *MongoMessageService) MarkRead(ctx context.Context, id string) (bool, error) {
	res, err := s.messages.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"isread": true}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *MongoMessageService) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.messages.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

func (s *MongoMessageService) Conversations(ctx context.Context, userID string) ([]models.ConversationPreview, error) {
	filter := bson.M{"$or": []bson.M{
		{"senderid": userID},
		{"recipientid": userID},
	}}
	cur, err := s.messages.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	msgs := make([]models.Message, 0)
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}

	groups := groupConversations(userID, msgs)
	previews := make([]models.ConversationPreview, 0, len(groups))
	if len(groups) == 0 {
		return previews, nil
	}

	listingIDs := make([]string, 0, len(groups))
	userIDs := make([]string, 0, len(groups))
	for _, g := range groups {
		listingIDs = append(listingIDs, g.ListingID)
		userIDs = append(userIDs, g.OtherUserID)
	}

	titles, err := s.listingTitles(ctx, listingIDs)
	if err != nil {
		return nil, err
	}
	usernames, err := s.accountUsernames(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	for _, g := range groups {
		title, ok := titles[g.ListingID]
		if !ok {
			title = UnknownListingTitle
		}
		username, ok := usernames[g.OtherUserID]
		if !ok {
			username = UnknownUsername
		}
		previews = append(previews, models.ConversationPreview{
			ConversationID: g.ConversationID,
			LastMessage:    g.LastMessage,
			LastTimestamp:  g.LastTimestamp,
			ListingID:      g.ListingID,
			ListingTitle:   title,
			OtherUserID:    g.OtherUserID,
			OtherUsername:  username,
		})
	}
	return previews, nil
}

func (s *MongoMessageService) FindConversation(ctx context.Context, listingID, userA, userB string) (string, error) {
	filter := bson.M{
		"listingid": listingID,
		"$or": []bson.M{
			{"senderid": userA, "recipientid": userB},
			{"senderid": userB, "recipientid": userA},
		},
	}
	var doc models.Message
	if err := s.messages.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return doc.ConversationID, nil
}

func (s *MongoMessageService) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.messages.CountDocuments(ctx, bson.M{
		"recipientid": recipientID,
		"isread":      false,
	})
}

func (s *MongoMessageService) listingTitles(ctx context.Context, ids []string) (map[string]string, error) {
	cur, err := s.listings.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"title": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]string, len(ids))
	for cur.Next(ctx) {
		var d struct {
			ID    string `bson:"_id"`
			Title string `bson:"title"`
		}
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out[d.ID] = d.Title
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoMessageService) accountUsernames(ctx context.Context, ids []string) (map[string]string, error) {
	cur, err := s.accounts.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"username": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]string, len(ids))
	for cur.Next(ctx) {
		var d struct {
			ID       string `bson:"_id"`
			Username string `bson:"username"`
		}
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out[d.ID] = d.Username
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
