package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/auth"
	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/domain"
)

// registerRequest is the POST /api/users/register body.
type registerRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone,omitempty"`
	CityName    string `json:"city_name,omitempty"`
	CountryName string `json:"country_name,omitempty"`
}

// loginRequest is the POST /api/users/login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userEnvelope matches the original API shape: the user object wrapped in a
// "user" key.
type userEnvelope struct {
	User domain.User `json:"user"`
}

// Register handles POST /api/users/register.
// On success it sets the auth cookie and returns 201 with the new account.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid payload")
		return
	}

	user, err := s.users.Register(r.Context(), domain.Registration{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		CityName:    req.CityName,
		CountryName: req.CountryName,
	})
	if err != nil {
		respondError(w, r, err, "user not found")
		return
	}

	if !s.setAuthCookie(w, r, user) {
		return
	}
	writeJSON(w, http.StatusCreated, userEnvelope{User: user})
}

// Login handles POST /api/users/login.
// On success it sets the auth cookie and returns 200 with the account.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid payload")
		return
	}

	user, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err, "user not found")
		return
	}

	if !s.setAuthCookie(w, r, user) {
		return
	}
	writeJSON(w, http.StatusOK, userEnvelope{User: user})
}

// Me handles GET /api/users/me. The auth middleware guarantees claims exist.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	user, err := s.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, userEnvelope{User: user})
}

// setAuthCookie mints a token for the user and sets the HttpOnly session
// cookie. Reports false (and writes a 500) if minting fails.
func (s *Server) setAuthCookie(w http.ResponseWriter, r *http.Request, user domain.User) bool {
	token, err := s.tokens.Mint(user.ID)
	if err != nil {
		respondError(w, r, err, "user not found")
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokens.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}
