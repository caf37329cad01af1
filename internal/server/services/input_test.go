package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve.Fields
}

func TestRegisterInput_Validate(t *testing.T) {
	require.NoError(t, RegisterInput{Username: "alice", Password: "secret", Name: "Alice"}.Validate())

	f := fieldsOf(t, RegisterInput{Username: "", Password: "  ", Name: strings.Repeat("x", 101)}.Validate())
	assert.Equal(t, []string{"username is required"}, f["username"])
	assert.Equal(t, []string{"password is required"}, f["password"])
	assert.Equal(t, []string{"name must not exceed 100 characters"}, f["name"])
}

func TestLoginInput_Validate(t *testing.T) {
	require.NoError(t, LoginInput{Username: "alice", Password: "secret"}.Validate())

	f := fieldsOf(t, LoginInput{}.Validate())
	assert.Len(t, f, 2)
}

func TestUpdateUserInput_Validate(t *testing.T) {
	require.NoError(t, UpdateUserInput{}.Validate())
	require.NoError(t, UpdateUserInput{Name: strPtr("Bob")}.Validate())

	f := fieldsOf(t, UpdateUserInput{Name: strPtr(""), Password: strPtr(strings.Repeat("p", 101))}.Validate())
	assert.Contains(t, f, "name")
	assert.Contains(t, f, "password")
}

func TestContactInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      ContactInput
		invalid []string
	}{
		{name: "minimal", in: ContactInput{FirstName: "Bob"}},
		{name: "full", in: ContactInput{FirstName: "Bob", LastName: strPtr("Smith"), Email: strPtr("bob@example.com"), Phone: strPtr("+1 555 0100")}},
		{name: "empty optional email", in: ContactInput{FirstName: "Bob", Email: strPtr("")}},
		{name: "missing first name", in: ContactInput{}, invalid: []string{"first_name"}},
		{name: "bad email", in: ContactInput{FirstName: "Bob", Email: strPtr("not-an-email")}, invalid: []string{"email"}},
		{name: "display name email", in: ContactInput{FirstName: "Bob", Email: strPtr("Bob <bob@example.com>")}, invalid: []string{"email"}},
		{name: "long phone", in: ContactInput{FirstName: "Bob", Phone: strPtr(strings.Repeat("1", 21))}, invalid: []string{"phone"}},
		{name: "long last name", in: ContactInput{FirstName: strings.Repeat("b", 51), LastName: strPtr(strings.Repeat("s", 51))}, invalid: []string{"first_name", "last_name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if len(tt.invalid) == 0 {
				require.NoError(t, err)
				return
			}
			f := fieldsOf(t, err)
			for _, field := range tt.invalid {
				assert.Contains(t, f, field)
			}
			assert.Len(t, f, len(tt.invalid))
		})
	}
}

func TestContactInput_EmptyEmailIsNotChecked(t *testing.T) {
	in := ContactInput{FirstName: "Bob", Email: strPtr("")}
	require.NoError(t, in.Validate())
	assert.Nil(t, in.normalize().Email)
}

func TestAddressInput_Validate(t *testing.T) {
	require.NoError(t, AddressInput{Country: "NL"}.Validate())

	f := fieldsOf(t, AddressInput{PostalCode: strPtr("12345678901")}.Validate())
	assert.Equal(t, []string{"country is required"}, f["country"])
	assert.Equal(t, []string{"postal_code must not exceed 10 characters"}, f["postal_code"])
}

func TestMaxLen_CountsRunes(t *testing.T) {
	require.NoError(t, ContactInput{FirstName: strings.Repeat("é", 50)}.Validate())
}

func TestAddressInput_Normalize(t *testing.T) {
	in := AddressInput{Street: strPtr(""), City: strPtr("Riga"), Country: "LV"}.normalize()
	assert.Nil(t, in.Street)
	assert.Equal(t, "Riga", *in.City)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	f := fieldsOf(t, ContactInput{Email: strPtr("bob@")}.Validate())
	assert.Equal(t, map[string][]string{
		"first_name": {"first_name is required"},
		"email":      {"email must be a valid email address"},
	}, f)
}

func TestValidate_TrimsBeforeChecking(t *testing.T) {
	require.NoError(t, ContactInput{FirstName: " Bob ", Email: strPtr("  bob@example.com ")}.Validate())
	require.NoError(t, AddressInput{Country: "NL", PostalCode: strPtr(" 1234567890 ")}.Validate())

	f := fieldsOf(t, ContactInput{FirstName: "   "}.Validate())
	assert.Equal(t, []string{"first_name is required"}, f["first_name"])

	f = fieldsOf(t, UpdateUserInput{Name: strPtr("   ")}.Validate())
	assert.Equal(t, []string{"name is required"}, f["name"])
}

func TestNormalize_TrimsScalarsButNotPasswords(t *testing.T) {
	reg := RegisterInput{Username: " alice ", Password: " secret ", Name: " Alice "}.normalize()
	assert.Equal(t, RegisterInput{Username: "alice", Password: " secret ", Name: "Alice"}, reg)

	login := LoginInput{Username: "\talice\n", Password: " secret"}.normalize()
	assert.Equal(t, LoginInput{Username: "alice", Password: " secret"}, login)

	upd := UpdateUserInput{Name: strPtr(" Bob "), Password: strPtr(" pw ")}.normalize()
	assert.Equal(t, "Bob", *upd.Name)
	assert.Equal(t, " pw ", *upd.Password)

	c := ContactInput{FirstName: " Bob ", LastName: strPtr(" Smith "), Phone: strPtr("  ")}.normalize()
	assert.Equal(t, "Bob", c.FirstName)
	assert.Equal(t, "Smith", *c.LastName)
	assert.Nil(t, c.Phone)
}
