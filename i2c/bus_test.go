package i2c

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
)

type fakeBus struct {
	addr   uint16
	w      []byte
	data   []byte
	speed  physic.Frequency
	err    error
	closed bool
}

func (f *fakeBus) String() string {
	return "fake"
}

func (f *fakeBus) Tx(addr uint16, w, r []byte) error {
	f.addr = addr
	f.w = append([]byte(nil), w...)
	if f.err != nil {
		return f.err
	}
	copy(r, f.data)
	return nil
}

func (f *fakeBus) SetSpeed(freq physic.Frequency) error {
	f.speed = freq
	return f.err
}

func (f *fakeBus) Close() error {
	f.closed = true
	return nil
}

func TestGenericBus_ReadRegister(t *testing.T) {
	fake := &fakeBus{data: []byte{0x08, 0x03}}
	bus := &GenericBus{bus: fake}

	buf := make([]byte, 2)
	require.NoError(t, bus.ReadRegister(context.Background(), 0x17, 0x02, buf))
	assert.Equal(t, uint16(0x17), fake.addr)
	assert.Equal(t, []byte{0x02}, fake.w)
	assert.Equal(t, []byte{0x08, 0x03}, buf)

	require.NoError(t, bus.Close())
	assert.True(t, fake.closed)
}

func TestGenericBus_SetSpeed(t *testing.T) {
	fake := &fakeBus{}
	bus := &GenericBus{bus: fake}
	require.NoError(t, bus.SetSpeed(400000))
	assert.Equal(t, 400*physic.KiloHertz, fake.speed)
}

func TestGenericBus_Errors(t *testing.T) {
	txErr := errors.New("remote I/O error")
	bus := &GenericBus{bus: &fakeBus{err: txErr}}
	assert.ErrorIs(t, bus.ReadRegister(context.Background(), 0x17, 0x04, make([]byte, 1)), txErr)
	assert.ErrorIs(t, bus.SetSpeed(100000), txErr)
}
