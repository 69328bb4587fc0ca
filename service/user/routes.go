package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/mux"
	"github.com/medicore-labs/hms-server/cmd/utils"
	"github.com/medicore-labs/hms-server/service/session"
	"github.com/medicore-labs/hms-server/service/store"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

type Handler struct {
	users    store.UserStore
	sessions *session.Store
}

func NewHandler(users store.UserStore, sessions *session.Store) *Handler {
	return &Handler{users: users, sessions: sessions}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/login", h.HandleLogin).Methods("POST")
	router.HandleFunc("/logout", utils.AuthMiddleware(h.HandleLogout)).Methods("POST")
	router.HandleFunc("/profile", utils.AuthMiddleware(h.GetProfile)).Methods("GET")
	router.HandleFunc("/profile", utils.AuthMiddleware(h.UpdateProfile)).Methods("PUT")
	router.HandleFunc("/profile/avatar", utils.AuthMiddleware(h.UploadAvatar)).Methods("POST")
	router.HandleFunc("/avatars/{filename}", h.ServeAvatar).Methods("GET")
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.ByUsername(r.Context(), loginRequest.Username)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(loginRequest.Password)); err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := generateJWT(user.ID, tokenLifetime)
	if err != nil {
		http.Error(w, "Error generating access token", http.StatusInternalServerError)
		return
	}

	if err := h.sessions.Save(r.Context(), session.Record{
		UserID:   user.ID,
		Username: user.Username,
		IssuedAt: time.Now(),
	}); err != nil {
		http.Error(w, "Error creating session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.sessions.Delete(r.Context(), userID); err != nil {
		http.Error(w, "Error ending session", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// UpdateProfile edits the display fields of the logged-in operator.
// Username, role and password are not editable here.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving user", http.StatusInternalServerError)
		return
	}

	var profileRequest struct {
		Name        string `json:"name"`
		Age         int    `json:"age"`
		Birthplace  string `json:"birthplace"`
		Email       string `json:"email"`
		PhoneNumber string `json:"phone_number"`
		Avatar      string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&profileRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if profileRequest.Email != "" && !utils.IsValidEmail(profileRequest.Email) {
		http.Error(w, "Invalid email address", http.StatusBadRequest)
		return
	}

	if profileRequest.Name != "" {
		user.Name = profileRequest.Name
	}
	if profileRequest.Age != 0 {
		user.Age = profileRequest.Age
	}
	if profileRequest.Birthplace != "" {
		user.Birthplace = profileRequest.Birthplace
	}
	if profileRequest.Email != "" {
		user.Email = profileRequest.Email
	}
	if profileRequest.PhoneNumber != "" {
		user.PhoneNumber = profileRequest.PhoneNumber
	}
	if profileRequest.Avatar != "" {
		user.Avatar = profileRequest.Avatar
	}

	if err := h.users.Update(r.Context(), user); err != nil {
		http.Error(w, "Error updating user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(utils.MaxImageSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		http.Error(w, "Avatar file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := utils.SaveAvatar(file, header)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		http.Error(w, "Error retrieving user", http.StatusInternalServerError)
		return
	}

	if user.Avatar != "" && user.Avatar != "/placeholder.svg" {
		utils.DeleteAvatar(user.Avatar)
	}
	user.Avatar = url
	if err := h.users.Update(r.Context(), user); err != nil {
		http.Error(w, "Error updating user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"avatar": url})
}

func (h *Handler) ServeAvatar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	filename := vars["filename"]
	if strings.Contains(filename, "..") {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}
	http.ServeFile(w, r, filepath.Join("uploads/avatars", filepath.Clean(filename)))
}

func generateJWT(userID string, lifetime time.Duration) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("SECRET_KEY")))
}
