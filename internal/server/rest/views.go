package rest

import "github.com/dmitrijs2005/contactkeeper/internal/server/models"

// The view types are the wire representation of the models. Password hashes
// and ownership columns never leave the server.

type userView struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Token    *string `json:"token,omitempty"`
}

func newUserView(u *models.User) userView {
	return userView{ID: u.ID, Username: u.Username, Name: u.Name}
}

// newLoginView is the only view that carries the bearer token.
func newLoginView(u *models.User) userView {
	v := newUserView(u)
	v.Token = u.Token
	return v
}

type contactView struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func newContactView(c *models.Contact) contactView {
	return contactView{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, Email: c.Email, Phone: c.Phone}
}

func newContactViews(list []*models.Contact) []contactView {
	res := make([]contactView, 0, len(list))
	for _, c := range list {
		res = append(res, newContactView(c))
	}
	return res
}

type addressView struct {
	ID         int64   `json:"id"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    string  `json:"country"`
	PostalCode *string `json:"postal_code"`
}

func newAddressView(a *models.Address) addressView {
	return addressView{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}

func newAddressViews(list []*models.Address) []addressView {
	res := make([]addressView, 0, len(list))
	for _, a := range list {
		res = append(res, newAddressView(a))
	}
	return res
}
