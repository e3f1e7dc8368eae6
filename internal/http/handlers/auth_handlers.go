package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/khanhvo/retail-backoffice/internal/auth"
	models "github.com/khanhvo/retail-backoffice/internal/models"
	repo "github.com/khanhvo/retail-backoffice/internal/repo"
)

// RegisterHandler godoc
// @Summary Register a new user
// @Description Creates a user account and returns a token for immediate use
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Username and password"
// @Success 201 {object} RegisterResult
// @Failure 400 {string} string "Invalid credentials payload"
// @Failure 409 {string} string "Username taken"
// @Router /register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || len(req.Password) < 8 {
		http.Error(w, "username is required and password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "could not register user", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         "staff",
		CreatedAt:    time.Now().Format(time.RFC3339),
		UpdatedAt:    time.Now().Format(time.RFC3339),
	}
	created, err := userRepo.CreateUser(user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "username already taken", http.StatusConflict)
			return
		}
		http.Error(w, "could not register user", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateToken(created)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	logger.Info("user registered", zap.String("username", created.Username))
	writeJSON(w, http.StatusCreated, RegisterResult{
		Message: "user registered",
		Token:   token,
	})
}

// LoginHandler godoc
// @Summary Authenticate and obtain a token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body UserLogin true "Username and password"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string "Invalid credentials"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req UserLogin
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "could not log in", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	logger.Info("user logged in", zap.String("username", user.Username))
	writeJSON(w, http.StatusOK, LoginResult{Token: token})
}
