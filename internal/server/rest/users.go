package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
	"github.com/dmitrijs2005/contactkeeper/internal/server/services"
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	user, err := s.users.Register(r.Context(), in)
	s.metrics.RecordAuth("register", err == nil)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", user.Username)
	writeData(w, http.StatusCreated, newUserView(user))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	user, err := s.users.Login(r.Context(), in)
	s.metrics.RecordAuth("login", err == nil)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			s.logger.Warn(r.Context(), "Login failed", "username", in.Username)
		}
		s.writeError(r.Context(), w, err)
		return
	}

	writeData(w, http.StatusOK, newLoginView(user))
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request, user *models.User) {
	writeData(w, http.StatusOK, newUserView(user))
}

func (s *Server) updateCurrentUser(w http.ResponseWriter, r *http.Request, user *models.User) {
	var in services.UpdateUserInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	updated, err := s.users.UpdateProfile(r.Context(), user, in)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeData(w, http.StatusOK, newUserView(updated))
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request, user *models.User) {
	err := s.users.Logout(r.Context(), user)
	s.metrics.RecordAuth("logout", err == nil)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeData(w, http.StatusOK, true)
}
