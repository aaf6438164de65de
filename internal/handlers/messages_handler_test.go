package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gatormarket/backend/internal/models"
	"github.com/gatormarket/backend/internal/services"
)

func newMessagesRouter(svc services.MessageService) *chi.Mux {
	h := NewMessagesHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/messages", h.List)
	r.Post("/messages", h.Create)
	r.Get("/messages/conversations/{userID}", h.Conversations)
	r.Get("/messages/find-conversation", h.FindConversation)
	r.Get("/messages/unread-count", h.UnreadCount)
	r.Get("/messages/{messageID}", h.Get)
	r.Delete("/messages/{messageID}", h.Delete)
	r.Post("/messages/{messageID}/read", h.MarkRead)
	return r
}

func TestMessagesCreateKeepsConversationID(t *testing.T) {
	svc := new(mockMessageService)
	svc.On("Create", mock.Anything, models.MessageInput{
		SenderID:       "u1",
		RecipientID:    "u2",
		ConversationID: "c1",
		ListingID:      "l1",
		Body:           "is this available?",
	}).Return("m1", nil)

	body := `{"senderid":"u1","recipientid":"u2","conversationid":"c1","listingid":"l1","message":"is this available?"}`
	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newMessagesRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "m1", resp["id"])
	assert.Equal(t, "c1", resp["conversationid"])
	svc.AssertExpectations(t)
}

func TestMessagesCreateMintsConversationID(t *testing.T) {
	svc := new(mockMessageService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in models.MessageInput) bool {
		_, err := uuid.Parse(in.ConversationID)
		return err == nil
	})).Return("m1", nil)

	body := `{"senderid":"u1","recipientid":"u2","listingid":"l1","message":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newMessagesRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	_, err := uuid.Parse(resp["conversationid"])
	assert.NoError(t, err, "response carries the minted id")
	svc.AssertExpectations(t)
}

func TestMessagesListPassesFilters(t *testing.T) {
	svc := new(mockMessageService)
	svc.On("List", mock.Anything, services.ListMessagesOptions{
		ConversationID: "c1",
		Limit:          services.DefaultMessagePageSize,
	}).Return([]models.Message{{ID: "m1"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/messages?conversationid=c1", nil)
	rec := httptest.NewRecorder()
	newMessagesRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestMessagesGetNotFound(t *testing.T) {
	svc := new(mockMessageService)
	svc.On("Get", mock.Anything, "missing").Return(nil, services.ErrMessageNotFound)

	req := httptest.NewRequest(http.MethodGet, "/messages/missing", nil)
	rec := httptest.NewRecorder()
	newMessagesRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMessagesMarkRead(t *testing.T) {
	svc := new(mockMessageService)
	svc.On("MarkRead", mock.Anything, "m1").Return(true, nil)

	req := httptest.NewRequest(http.MethodPost, "/messages/m1/read", nil)
	rec := httptest.NewRecorder()
	newMessagesRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestMessagesConversations(t *testing.T) {
	svc := new(mockMessageService)
	svc.On("Conversations", mock.Anything, "u1").Return([]models.ConversationPreview{{
		ConversationID: "c1",
		LastMessage:    "yes it is",
		ListingTitle:   "Mini fridge",
		OtherUsername:  "bob",
	}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/messages/conversations/u1", nil)
	rec := httptest.NewRecorder()
	newMessagesRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []models.ConversationPreview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Mini fridge", got[0].ListingTitle)
	svc.AssertExpectations(t)
}

func TestMessagesFindConversation(t *testing.T) {
	svc := new(mockMessageService)
	svc.On("FindConversation", mock.Anything, "l1", "u1", "u2").Return("c1", nil)

	req := httptest.NewRequest(http.MethodGet, "/messages/find-conversation?listingid=l1&user1=u1&user2=u2", nil)
	rec := httptest.NewRecorder()
	newMessagesRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]*string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp["conversationid"])
	assert.Equal(t, "c1", *resp["conversationid"])
}

func TestMessagesFindConversationNone(t *testing.T) {
	svc := new(mockMessageService)
	svc.On("FindConversation", mock.Anything, "l1", "u1", "u2").Return("", nil)

	req := httptest.NewRequest(http.MethodGet, "/messages/find-conversation?listingid=l1&user1=u1&user2=u2", nil)
	rec := httptest.NewRecorder()
	newMessagesRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]*string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp["conversationid"])
}

func TestMessagesFindConversationMissingParams(t *testing.T) {
	svc := new(mockMessageService)
	req := httptest.NewRequest(http.MethodGet, "/messages/find-conversation?listingid=l1&user1=u1", nil)
	rec := httptest.NewRecorder()
	newMessagesRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "FindConversation")
}

func TestMessagesUnreadCount(t *testing.T) {
	svc := new(mockMessageService)
	svc.On("UnreadCount", mock.Anything, "u1").Return(int64(3), nil)

	req := httptest.NewRequest(http.MethodGet, "/messages/unread-count?userid=u1", nil)
	rec := httptest.NewRecorder()
	newMessagesRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp["count"])
}

func TestMessagesUnreadCountMissingUser(t *testing.T) {
	svc := new(mockMessageService)
	req := httptest.NewRequest(http.MethodGet, "/messages/unread-count", nil)
	rec := httptest.NewRecorder()
	newMessagesRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "UnreadCount")
}
