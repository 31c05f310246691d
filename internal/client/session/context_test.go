package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_SessionLifecycle(t *testing.T) {
	c := NewContext()

	assert.Nil(t, c.Session())
	assert.Equal(t, "", c.Token())

	c.SetSession(Session{Token: "abc", UserID: "alice", Email: "a@b.c"})
	require.NotNil(t, c.Session())
	assert.Equal(t, "abc", c.Token())

	c.ClearSession()
	assert.Nil(t, c.Session())
	assert.Equal(t, "", c.Token())
}

func TestContext_PendingLifecycle(t *testing.T) {
	c := NewContext()

	assert.Nil(t, c.Pending())

	c.SetPending(PendingRegistration{UserID: "alice", Email: "a@b.c"})
	require.NotNil(t, c.Pending())
	assert.Equal(t, "alice", c.Pending().UserID)

	c.ClearPending()
	assert.Nil(t, c.Pending())
}
