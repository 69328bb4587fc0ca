package messages

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/medicore-labs/hms-server/cmd/models"
	"github.com/medicore-labs/hms-server/cmd/utils"
	"github.com/medicore-labs/hms-server/service/store"
	"github.com/medicore-labs/hms-server/service/ws"
)

type Handler struct {
	messages store.MessageStore
	hub      *ws.Hub
}

func NewHandler(messages store.MessageStore, hub *ws.Hub) *Handler {
	return &Handler{messages: messages, hub: hub}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/messages", utils.AuthMiddleware(h.GetMessages)).Methods("GET")
	router.HandleFunc("/messages", utils.AuthMiddleware(h.SendMessage)).Methods("POST")
	router.HandleFunc("/messages/peer/{userId}", utils.AuthMiddleware(h.GetPeerMessages)).Methods("GET")
	router.HandleFunc("/messages/peer/{userId}/read", utils.AuthMiddleware(h.MarkPeerMessagesRead)).Methods("PATCH")
}

// GetMessages returns every message the current user sent or received,
// which is what the inbox sidebar is built from.
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	all, err := h.messages.All(r.Context())
	if err != nil {
		http.Error(w, "Error retrieving messages", http.StatusInternalServerError)
		return
	}

	mine := make([]models.Message, 0, len(all))
	for _, m := range all {
		if m.SenderID == userID || m.ReceiverID == userID {
			mine = append(mine, m)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"messages": mine,
	})
}

func (h *Handler) GetPeerMessages(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)

	conversation, err := h.messages.Conversation(r.Context(), userID, vars["userId"])
	if err != nil {
		http.Error(w, "Error retrieving messages", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"messages": conversation,
	})
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var sendRequest struct {
		ReceiverID string `json:"receiver_id"`
		Content    string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&sendRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if sendRequest.ReceiverID == "" || sendRequest.Content == "" {
		http.Error(w, "receiver_id and content are required", http.StatusBadRequest)
		return
	}

	message := models.Message{
		SenderID:   userID,
		ReceiverID: sendRequest.ReceiverID,
		Content:    sendRequest.Content,
		Timestamp:  time.Now(),
	}
	if err := h.messages.Create(r.Context(), &message); err != nil {
		http.Error(w, "Error sending message", http.StatusInternalServerError)
		return
	}

	if h.hub != nil {
		h.hub.NotifyMessage(message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(message)
}

// MarkPeerMessagesRead flags everything the peer sent to the current user
// as read. Messages going the other way are untouched.
func (h *Handler) MarkPeerMessagesRead(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)

	if err := h.messages.MarkRead(r.Context(), vars["userId"], userID); err != nil {
		http.Error(w, "Error updating messages", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
