package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinOwnerPID(t *testing.T) {
	assert.Equal(t, 0, SocketRecord{}.MinOwnerPID())

	r := SocketRecord{Owners: []Owner{
		{PID: 300, Name: "a"},
		{PID: 100, Name: "b"},
		{PID: 200, Name: "c"},
	}}
	assert.Equal(t, 100, r.MinOwnerPID())
}

func TestStateName(t *testing.T) {
	assert.Equal(t, "LISTEN", StateName(StateListen))
	assert.Equal(t, "TIME_WAIT", StateName("06"))
	assert.Equal(t, "UNKNOWN", StateName("FF"))
}
