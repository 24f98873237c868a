package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Username string `validate:"required,max=16,username"`
	Password string `validate:"required"`
	SchemeID string `validate:"omitempty,max=4"`
}

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		in      signup
		wantErr map[string]string
	}{
		{
			name: "valid with inner space",
			in:   signup{Username: "Peter Oh", Password: "my-secret"},
		},
		{
			name: "missing both",
			in:   signup{},
			wantErr: map[string]string{
				"username": "Username is a required field",
				"password": "Password is a required field",
			},
		},
		{
			name:    "surrounding space",
			in:      signup{Username: " Peter", Password: "x"},
			wantErr: map[string]string{"username": "Username must not contain control characters or surrounding spaces"},
		},
		{
			name:    "control character",
			in:      signup{Username: "Pe\nter", Password: "x"},
			wantErr: map[string]string{"username": "Username must not contain control characters or surrounding spaces"},
		},
		{
			name:    "snake cased field",
			in:      signup{Username: "Peter", Password: "x", SchemeID: "salted"},
			wantErr: map[string]string{"scheme_id": "SchemeID must be a maximum of 4 characters in length"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			var verr V10ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantErr, verr.Values())
			assert.NotEmpty(t, verr.Error())
		})
	}
}

func TestV10Validator_NonStruct(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	err = v.Validate("not a struct")
	assert.Error(t, err)

	var verr V10ValidationError
	assert.NotErrorAs(t, err, &verr)
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "username", toSnake("Username"))
	assert.Equal(t, "scheme_id", toSnake("SchemeID"))
	assert.Equal(t, "http_server", toSnake("HTTPServer"))
	assert.Equal(t, "validation error", V10ValidationError{}.Error())
}
