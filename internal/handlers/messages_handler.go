package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gatormarket/backend/internal/ident"
	"github.com/gatormarket/backend/internal/models"
	"github.com/gatormarket/backend/internal/services"
)

type MessagesHandler struct {
	messages services.MessageService
	log      *zap.Logger
}

func NewMessagesHandler(messages services.MessageService, log *zap.Logger) *MessagesHandler {
	return &MessagesHandler{messages: messages, log: log}
}

func (h *MessagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.MessageInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("invalid request body"))
		return
	}

	// First message of a new thread: mint the conversation id here so the
	// client can keep using it.
	if strings.TrimSpace(req.ConversationID) == "" {
		req.ConversationID = ident.NewConversationID()
	}

	id, err := h.messages.Create(r.Context(), req)
	if err != nil {
		if isInternal(err) {
			h.log.Error("create message", zap.Error(err))
		}
		writeServiceError(w, err, "failed to send message")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":             id,
		"conversationid": req.ConversationID,
	})
}

func (h *MessagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	msg, err := h.messages.Get(r.Context(), chi.URLParam(r, "messageID"))
	if err != nil {
		if isInternal(err) {
			h.log.Error("get message", zap.Error(err))
		}
		writeServiceError(w, err, "failed to get message")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := services.ListMessagesOptions{
		ConversationID: r.URL.Query().Get("conversationid"),
		ListingID:      r.URL.Query().Get("listingid"),
		Limit:          queryInt(r, "limit", services.DefaultMessagePageSize),
	}

	msgs, err := h.messages.List(r.Context(), opts)
	if err != nil {
		h.log.Error("list messages", zap.Error(err))
		writeServiceError(w, err, "failed to list messages")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *MessagesHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ok, err := h.messages.MarkRead(r.Context(), chi.URLParam(r, "messageID"))
	if err != nil {
		h.log.Error("mark message read", zap.Error(err))
		writeServiceError(w, err, "failed to mark message read")
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("message not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "message marked read"})
}

func (h *MessagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.messages.Delete(r.Context(), chi.URLParam(r, "messageID"))
	if err != nil {
		h.log.Error("delete message", zap.Error(err))
		writeServiceError(w, err, "failed to delete message")
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("message not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "message deleted"})
}

func (h *MessagesHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	previews, err := h.messages.Conversations(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.log.Error("conversations", zap.Error(err))
		writeServiceError(w, err, "failed to load conversations")
		return
	}
	writeJSON(w, http.StatusOK, previews)
}

func (h *MessagesHandler) FindConversation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listingID := q.Get("listingid")
	userA := q.Get("user1")
	userB := q.Get("user2")
	if listingID == "" || userA == "" || userB == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("listingid, user1 and user2 are required"))
		return
	}

	conversationID, err := h.messages.FindConversation(r.Context(), listingID, userA, userB)
	if err != nil {
		h.log.Error("find conversation", zap.Error(err))
		writeServiceError(w, err, "failed to find conversation")
		return
	}

	// null, not "", when no thread exists.
	var out *string
	if conversationID != "" {
		out = &conversationID
	}
	writeJSON(w, http.StatusOK, map[string]*string{"conversationid": out})
}

func (h *MessagesHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userid")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("userid is required"))
		return
	}

	count, err := h.messages.UnreadCount(r.Context(), userID)
	if err != nil {
		h.log.Error("unread count", zap.Error(err))
		writeServiceError(w, err, "failed to count unread messages")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}
