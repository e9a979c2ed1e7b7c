package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/amberbeaumont/IThelpdesklite/internal/middleware"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"
	"github.com/amberbeaumont/IThelpdesklite/internal/service"
	"github.com/amberbeaumont/IThelpdesklite/internal/utils"
)

type AuthHTTP struct {
	svc      *service.AuthService
	users    repository.UserRepository
	secure   bool
	onLogout []func(uid string)
}

// NewAuthHTTP builds the auth endpoints; secure marks the session cookie HTTPS-only.
func NewAuthHTTP(s *service.AuthService, users repository.UserRepository, secure bool) *AuthHTTP {
	return &AuthHTTP{svc: s, users: users, secure: secure}
}

// OnLogout registers fn to run with the actor id when a signed-in user logs out.
func (h *AuthHTTP) OnLogout(fn func(uid string)) *AuthHTTP {
	h.onLogout = append(h.onLogout, fn)
	return h
}

func (h *AuthHTTP) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email        string `json:"email"`
			Name         string `json:"name"`
			Password     string `json:"password"`
			BusinessUnit string `json:"businessUnit"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := h.svc.Register(r.Context(), in.Email, in.Name, in.Password, in.BusinessUnit)
		if err != nil {
			writeError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, u)
	}
}

func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		token, u, err := h.svc.Login(r.Context(), in.Email, in.Password)
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   h.secure,
			Expires:  time.Now().Add(service.SessionTTL),
		})
		utils.JSON(w, http.StatusOK, u)
	}
}

func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if uid, _ := middleware.Actor(r.Context()); uid != "" {
			for _, fn := range h.onLogout {
				fn(uid)
			}
		}
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,              // expire immediately
			Expires:  time.Unix(0, 0), // for older browsers
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *AuthHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := middleware.Actor(r.Context())
		if uid == "" {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		u, err := h.users.GetByID(r.Context(), uid)
		if err != nil {
			writeError(w, err)
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}
