package rest

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
	"github.com/dmitrijs2005/contactkeeper/internal/server/services"
	"github.com/gorilla/mux"
)

// pathID reads a numeric path variable. The routes only match digits, so a
// parse failure means the value overflowed int64 and cannot name a row.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request, user *models.User) {
	list, err := s.contacts.List(r.Context(), user.ID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeData(w, http.StatusOK, newContactViews(list))
}

func (s *Server) createContact(w http.ResponseWriter, r *http.Request, user *models.User) {
	var in services.ContactInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	c, err := s.contacts.Create(r.Context(), user.ID, in)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeData(w, http.StatusCreated, newContactView(c))
}

func (s *Server) getContact(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r, "contactId")
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	c, err := s.contacts.Get(r.Context(), user.ID, id)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeData(w, http.StatusOK, newContactView(c))
}

func (s *Server) updateContact(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r, "contactId")
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	var in services.ContactInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	c, err := s.contacts.Update(r.Context(), user.ID, id, in)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeData(w, http.StatusOK, newContactView(c))
}

func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r, "contactId")
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	if err := s.contacts.Delete(r.Context(), user.ID, id); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeData(w, http.StatusOK, true)
}
