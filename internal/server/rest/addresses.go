package rest

import (
	"net/http"

	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
	"github.com/dmitrijs2005/contactkeeper/internal/server/services"
)

// addressPath reads contactId and, when withAddress is set, addressId.
func addressPath(r *http.Request, withAddress bool) (contactID, addressID int64, err error) {
	if contactID, err = pathID(r, "contactId"); err != nil {
		return 0, 0, err
	}
	if withAddress {
		if addressID, err = pathID(r, "addressId"); err != nil {
			return 0, 0, err
		}
	}
	return contactID, addressID, nil
}

func (s *Server) listAddresses(w http.ResponseWriter, r *http.Request, user *models.User) {
	contactID, _, err := addressPath(r, false)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	list, err := s.addresses.List(r.Context(), user.ID, contactID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeData(w, http.StatusOK, newAddressViews(list))
}

func (s *Server) createAddress(w http.ResponseWriter, r *http.Request, user *models.User) {
	contactID, _, err := addressPath(r, false)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	var in services.AddressInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	a, err := s.addresses.Create(r.Context(), user.ID, contactID, in)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeData(w, http.StatusCreated, newAddressView(a))
}

func (s *Server) getAddress(w http.ResponseWriter, r *http.Request, user *models.User) {
	contactID, addressID, err := addressPath(r, true)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	a, err := s.addresses.Get(r.Context(), user.ID, contactID, addressID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeData(w, http.StatusOK, newAddressView(a))
}

func (s *Server) updateAddress(w http.ResponseWriter, r *http.Request, user *models.User) {
	contactID, addressID, err := addressPath(r, true)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	var in services.AddressInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	a, err := s.addresses.Update(r.Context(), user.ID, contactID, addressID, in)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeData(w, http.StatusOK, newAddressView(a))
}

func (s *Server) deleteAddress(w http.ResponseWriter, r *http.Request, user *models.User) {
	contactID, addressID, err := addressPath(r, true)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	if err := s.addresses.Delete(r.Context(), user.ID, contactID, addressID); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeData(w, http.StatusOK, true)
}
