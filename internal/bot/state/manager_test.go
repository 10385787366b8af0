package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_UserState(t *testing.T) {
	m := NewManager()

	assert.Equal(t, None, m.GetUserState(1))

	m.SetUserState(1, WaitingForSimulationHours)
	assert.Equal(t, WaitingForSimulationHours, m.GetUserState(1))
	assert.Equal(t, None, m.GetUserState(2))

	m.ClearUserState(1)
	assert.Equal(t, None, m.GetUserState(1))
}

func TestManager_TempData(t *testing.T) {
	m := NewManager()

	_, ok := m.GetTempData(1, KeyLastRunID)
	assert.False(t, ok)

	m.SetTempData(1, KeyLastRunID, "run-1")
	v, ok := m.GetTempData(1, KeyLastRunID)
	assert.True(t, ok)
	assert.Equal(t, "run-1", v)

	m.ClearTempData(1)
	_, ok = m.GetTempData(1, KeyLastRunID)
	assert.False(t, ok)
}
