package docregistry

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestInitGetTeardown(t *testing.T) {
	id := uuid.New()
	e := Init(id, func() Entry { return 42 })
	assert.Equal(t, 42, e)

	got, ok := Get(id)
	assert.True(t, ok)
	assert.Equal(t, 42, got)

	Teardown(id)
	_, ok = Get(id)
	assert.False(t, ok)
}

func TestGetUnknownID(t *testing.T) {
	_, ok := Get(uuid.New())
	assert.False(t, ok)
}
