// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Username string `validate:"required,username"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,strong_password"`
}

func TestValidateStructAccepts(t *testing.T) {
	form := registerForm{
		Username: "player_one",
		Email:    "player@example.com",
		Password: "Str0ng!pass",
	}

	assert.NoError(t, ValidateStruct(&form))
}

func TestStrongPasswordRejections(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"too short", "S1!a"},
		{"no uppercase", "weakpass1!"},
		{"no lowercase", "WEAKPASS1!"},
		{"no number", "Weakpass!!"},
		{"no special", "Weakpass11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := registerForm{
				Username: "player_one",
				Email:    "player@example.com",
				Password: tt.password,
			}
			assert.Error(t, ValidateStruct(&form))
		})
	}
}

func TestUsernameRejections(t *testing.T) {
	tests := []struct {
		name     string
		username string
	}{
		{"too short", "ab"},
		{"has spaces", "player one"},
		{"has dash", "player-one"},
		{"has symbols", "player!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := registerForm{
				Username: tt.username,
				Email:    "player@example.com",
				Password: "Str0ng!pass",
			}
			assert.Error(t, ValidateStruct(&form))
		})
	}
}

func TestGetValidationErrors(t *testing.T) {
	form := registerForm{Username: "", Email: "nope", Password: "weak"}

	errs := GetValidationErrors(ValidateStruct(&form))
	require.Len(t, errs, 3)

	fields := make(map[string]string)
	for _, e := range errs {
		fields[e.Field] = e.Tag
	}
	assert.Equal(t, "required", fields["username"])
	assert.Equal(t, "email", fields["email"])
	assert.Equal(t, "strong_password", fields["password"])
}
