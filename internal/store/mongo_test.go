package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuplicateField(t *testing.T) {
	err := errors.New(`E11000 duplicate key error collection: PortFolio.users index: idx_email_unique dup key: { email: "a@b.c" }`)
	assert.Equal(t, "email", duplicateField(err))
	assert.Equal(t, "key", duplicateField(errors.New("something else")))
}
