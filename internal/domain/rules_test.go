package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripplanner/backend/internal/domain"
)

func TestValidateText(t *testing.T) {
	assert.NoError(t, domain.ValidateText("destination", "Rome"))
	assert.NoError(t, domain.ValidateText("destination", "São Paulo"))
	assert.ErrorIs(t, domain.ValidateText("destination", "Rio"), domain.ErrValidation)
	assert.ErrorIs(t, domain.ValidateText("title", "   ab   "), domain.ErrValidation)
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, domain.ValidateEmail("a@x.com"))
	assert.ErrorIs(t, domain.ValidateEmail(""), domain.ErrValidation)
	assert.ErrorIs(t, domain.ValidateEmail("not-an-email"), domain.ErrValidation)
	assert.ErrorIs(t, domain.ValidateEmail("Ann <a@x.com>"), domain.ErrValidation)
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, domain.ValidateURL("https://airbnb.com/rooms/1"))
	assert.ErrorIs(t, domain.ValidateURL("ftp://files.example.com"), domain.ErrValidation)
	assert.ErrorIs(t, domain.ValidateURL("/relative/path"), domain.ErrValidation)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "bob@x.com", domain.NormalizeEmail("  Bob@X.com "))
}

func TestCheckDistinctEmails(t *testing.T) {
	assert.NoError(t, domain.CheckDistinctEmails("a@x.com", []string{"b@x.com", "c@x.com"}))
	assert.NoError(t, domain.CheckDistinctEmails("a@x.com", nil))
}

func TestCheckDistinctEmails_OwnerAmongInvitees(t *testing.T) {
	err := domain.CheckDistinctEmails("a@x.com", []string{"b@x.com", "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestCheckDistinctEmails_RepeatedInvitee(t *testing.T) {
	err := domain.CheckDistinctEmails("a@x.com", []string{"b@x.com", "B@x.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}
