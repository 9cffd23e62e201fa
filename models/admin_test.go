package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := func() *RegisterRequest {
		return &RegisterRequest{
			Email:    "admin@example.com",
			Password: "password123",
			Name:     "Oguzhan",
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("email normalize edilir", func(t *testing.T) {
		r := valid()
		r.Email = "  Admin@Example.COM  "
		require.NoError(t, r.Validate())
		assert.Equal(t, "admin@example.com", r.Email)
	})

	t.Run("gecersiz email", func(t *testing.T) {
		for _, email := range []string{"", "not-an-email", "a@b", "a b@c.com"} {
			r := valid()
			r.Email = email
			assert.Error(t, r.Validate(), "email: %q", email)
		}
	})

	t.Run("kisa sifre", func(t *testing.T) {
		r := valid()
		r.Password = "1234567"
		assert.Error(t, r.Validate())
	})

	t.Run("unicode sifre rune sayilir", func(t *testing.T) {
		r := valid()
		r.Password = "şifreşif" // 8 rune, 8'den fazla byte
		assert.NoError(t, r.Validate())
	})

	t.Run("isim siniri", func(t *testing.T) {
		r := valid()
		r.Name = "A"
		assert.Error(t, r.Validate())

		r = valid()
		r.Name = "  Ay  " // trim sonrasi 2 karakter
		assert.NoError(t, r.Validate())
	})
}

func TestLoginRequestValidate(t *testing.T) {
	r := &LoginRequest{Email: "Admin@Example.com", Password: "x"}
	require.NoError(t, r.Validate())
	assert.Equal(t, "admin@example.com", r.Email)

	assert.Error(t, (&LoginRequest{Email: "", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "a@b.c", Password: ""}).Validate())
}

func TestChangePasswordRequestValidate(t *testing.T) {
	assert.NoError(t, (&ChangePasswordRequest{CurrentPassword: "old", NewPassword: "newpass123"}).Validate())
	assert.Error(t, (&ChangePasswordRequest{CurrentPassword: "", NewPassword: "newpass123"}).Validate())
	assert.Error(t, (&ChangePasswordRequest{CurrentPassword: "old", NewPassword: "short"}).Validate())
}

func TestChangeEmailRequestValidate(t *testing.T) {
	r := &ChangeEmailRequest{Password: "secret", NewEmail: "  New@Mail.COM "}
	require.NoError(t, r.Validate())
	assert.Equal(t, "new@mail.com", r.NewEmail)

	assert.Error(t, (&ChangeEmailRequest{Password: "", NewEmail: "a@b.com"}).Validate())
	assert.Error(t, (&ChangeEmailRequest{Password: "secret", NewEmail: "bozuk"}).Validate())
}

func TestConfirmCodeRequestValidate(t *testing.T) {
	r := &ConfirmCodeRequest{Code: " 123456 "}
	require.NoError(t, r.Validate())
	assert.Equal(t, "123456", r.Code)

	for _, code := range []string{"", "12345", "1234567", "12a456", "12345６"} {
		assert.Error(t, (&ConfirmCodeRequest{Code: code}).Validate(), "code: %q", code)
	}
}
