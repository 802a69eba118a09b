package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolabr/escolar/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func TestPersonInputNormalizeStripsFormatting(t *testing.T) {
	input := &PersonInput{
		FullName: "Alice Souza",
		CPF:      strPtr("529.982.247-25"),
		Email:    strPtr("  Alice@Example.COM "),
		Phone:    strPtr("(11) 98765-4321"),
	}

	require.NoError(t, input.Normalize())
	assert.Equal(t, "52998224725", *input.CPF)
	assert.Equal(t, "alice@example.com", *input.Email)
	assert.Equal(t, "11987654321", *input.Phone)
}

func TestPersonInputNormalizeRejectsBadCPF(t *testing.T) {
	input := &PersonInput{FullName: "Alice", CPF: strPtr("52998224724")}

	err := input.Normalize()
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "cpf")
}

func TestPersonInputNormalizeRequiresCPFOrEmail(t *testing.T) {
	input := &PersonInput{FullName: "Alice"}

	err := input.Normalize()
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "cpf")
	assert.Contains(t, validationErr.Fields, "email")
}

func TestPersonInputNormalizeEmptyStringsBecomeNil(t *testing.T) {
	input := &PersonInput{
		FullName: "Alice",
		CPF:      strPtr(""),
		Email:    strPtr("alice@example.com"),
		Phone:    strPtr("  "),
	}

	require.NoError(t, input.Normalize())
	assert.Nil(t, input.CPF)
	assert.Nil(t, input.Phone)
	require.NotNil(t, input.Email)
}
