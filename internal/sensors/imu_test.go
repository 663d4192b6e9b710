// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/motion_node/internal/config"
	"github.com/relabs-tech/motion_node/internal/lsm6dso32"
)

func mockConfig() *config.Config {
	return &config.Config{
		IMUTransport:  "mock",
		IMUAccelRate:  0x40,
		IMUAccelScale: 0,
		IMUGyroRate:   0x40,
		IMUGyroScale:  0,
		FIFOWatermark: 16,
		FIFOMode:      6,
		PedoMode:      0x01,
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	config.SetGlobal(mockConfig())
	mgr := GetIMUManager()
	require.NoError(t, mgr.Reinitialize())
	return mgr
}

func TestManagerUninitialized(t *testing.T) {
	m := &Manager{}
	assert.False(t, m.Available())
	_, err := m.ReadSample()
	assert.Error(t, err)
}

func TestManagerInitAndSample(t *testing.T) {
	mgr := newTestManager(t)
	assert.True(t, mgr.Available())

	s, err := mgr.ReadSample()
	require.NoError(t, err)
	assert.Equal(t, "mock", s.Source)
	// Mock registers read back zero, which converts to 0 mg / 0 mdps
	// and the 25°C temperature midpoint.
	assert.Zero(t, s.Ax)
	assert.Zero(t, s.AxMilliG)
	assert.InDelta(t, 25.0, s.TempC, 0.001)
}

func TestManagerRegisterAccess(t *testing.T) {
	mgr := newTestManager(t)

	v, err := mgr.ReadRegister(lsm6dso32.RegWhoAmI)
	require.NoError(t, err)
	assert.Equal(t, byte(lsm6dso32.WhoAmI), v)

	require.NoError(t, mgr.WriteRegister(lsm6dso32.RegXOfsUsr, 0x2A))
	v, err = mgr.ReadRegister(lsm6dso32.RegXOfsUsr)
	require.NoError(t, err)
	assert.Equal(t, byte(0x2A), v)

	all, err := mgr.ReadAllRegisters()
	require.NoError(t, err)
	assert.Equal(t, byte(lsm6dso32.WhoAmI), all[lsm6dso32.RegWhoAmI])
	assert.Equal(t, byte(0x2A), all[lsm6dso32.RegXOfsUsr])
}

func TestManagerPagedRoundTrip(t *testing.T) {
	mgr := newTestManager(t)

	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	require.NoError(t, mgr.PagedWrite(0x0280, data))

	got, err := mgr.PagedRead(0x0280, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestManagerApplyUserOffsets(t *testing.T) {
	mgr := newTestManager(t)

	require.NoError(t, mgr.ApplyUserOffsets(5, -3, 7))

	x, err := mgr.ReadRegister(lsm6dso32.RegXOfsUsr)
	require.NoError(t, err)
	y, err := mgr.ReadRegister(lsm6dso32.RegYOfsUsr)
	require.NoError(t, err)
	z, err := mgr.ReadRegister(lsm6dso32.RegZOfsUsr)
	require.NoError(t, err)
	assert.Equal(t, byte(5), x)
	assert.Equal(t, byte(0xFD), y)
	assert.Equal(t, byte(7), z)

	ctrl7, err := mgr.ReadRegister(lsm6dso32.RegCtrl7G)
	require.NoError(t, err)
	assert.NotZero(t, ctrl7&0x02, "USR_OFF_ON_OUT should be set")
}

func TestManagerStepsAndEvents(t *testing.T) {
	mgr := newTestManager(t)

	steps, err := mgr.Steps()
	require.NoError(t, err)
	assert.Zero(t, steps.Steps)
	assert.NotEmpty(t, steps.Time)

	events, err := mgr.Events()
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRegisterMapMetadata(t *testing.T) {
	// Sanity check the register map metadata the debug tool publishes.
	regs := GetLSM6DSO32RegisterMap()
	require.NotEmpty(t, regs)

	byAddr := map[string]RegisterInfo{}
	for _, r := range regs {
		byAddr[r.Address] = r
	}
	who, ok := byAddr["0x0F"]
	require.True(t, ok)
	assert.Equal(t, "WHO_AM_I", who.Name)
	assert.Equal(t, "R", who.Access)

	ctrl1, ok := byAddr["0x10"]
	require.True(t, ok)
	assert.Equal(t, "CTRL1_XL", ctrl1.Name)
	assert.Equal(t, "RW", ctrl1.Access)
	assert.NotEmpty(t, ctrl1.BitFields)
}
