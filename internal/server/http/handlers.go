package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/psidorov/interviewhub/internal/common"
	"github.com/psidorov/interviewhub/internal/server/models"
	"github.com/psidorov/interviewhub/internal/server/validation"
)

type signinResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// profileResponse is the safe projection of an account: no password hash,
// no internal flags.
type profileResponse struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	InterviewCount int64  `json:"interview_count"`
	CreatedAt      string `json:"created_at"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req validation.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageBody("Invalid request body"))
		return
	}

	if errs := validation.ValidateSignup(&req); errs != nil {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	if err := s.auth.SignUp(r.Context(), req); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeJSON(w, http.StatusConflict, messageBody("Email already registered. Please sign in."))
			return
		}
		s.logger.Error(r.Context(), "signup failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Error creating user",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusCreated, messageBody("User created successfully"))
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req validation.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageBody("Invalid request body"))
		return
	}

	if errs := validation.ValidateSignin(&req); errs != nil {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	user, token, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			// Unknown email and wrong password produce the same body.
			writeJSON(w, http.StatusUnauthorized, messageBody("Invalid email or password"))
			return
		}
		s.logger.Error(r.Context(), "signin failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, messageBody("Error signing in"))
		return
	}

	writeJSON(w, http.StatusOK, signinResponse{
		Token: token,
		Role:  user.Role,
		Email: user.Email,
		Name:  user.Name,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	raw := r.Header.Get("Authorization")
	if raw == "" {
		writeJSON(w, http.StatusUnauthorized, messageBody("Token is missing!"))
		return
	}

	user, err := s.auth.Profile(r.Context(), raw)
	if err != nil {
		if errors.Is(err, common.ErrorInternal) {
			s.logger.Error(r.Context(), "profile lookup failed", "error", err.Error())
			writeJSON(w, http.StatusInternalServerError, messageBody("Error fetching profile"))
			return
		}
		// The concrete token failure is for logs only; the body stays generic.
		s.logger.Warn(r.Context(), "token rejected", "reason", err.Error())
		writeJSON(w, http.StatusUnauthorized, messageBody("Token is invalid!"))
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(user))
}

func toProfileResponse(u *models.User) profileResponse {
	return profileResponse{
		UserID:         u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		InterviewCount: u.InterviewCount,
		CreatedAt:      u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
