package i2c

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gobotI2C "gobot.io/x/gobot/v2/drivers/i2c"
)

// fakeConnection implements only the operations used by GobotBus, the rest of
// the interface panics if called.
type fakeConnection struct {
	gobotI2C.Connection
	regs   map[byte][]byte
	err    error
	closed bool
}

func (f *fakeConnection) ReadBlockData(reg uint8, b []byte) error {
	if f.err != nil {
		return f.err
	}
	copy(b, f.regs[reg])
	return nil
}

func (f *fakeConnection) Close() error {
	f.closed = true
	return nil
}

type fakeConnector struct {
	conns    map[int]*fakeConnection
	requests [][2]int
}

func (f *fakeConnector) GetI2cConnection(address int, busNr int) (gobotI2C.Connection, error) {
	f.requests = append(f.requests, [2]int{address, busNr})
	c, ok := f.conns[address]
	if !ok {
		return nil, errors.New("no such device")
	}
	return c, nil
}

func (f *fakeConnector) DefaultI2cBus() int {
	return 3
}

func TestGobotBus_ReadRegister(t *testing.T) {
	conn := &fakeConnection{regs: map[byte][]byte{0x09: {0x50, 0xC3, 0x00, 0xFF}}}
	connector := &fakeConnector{conns: map[int]*fakeConnection{0x17: conn}}
	bus := NewGobotBus(connector, 1)

	buf := make([]byte, 4)
	require.NoError(t, bus.ReadRegister(context.Background(), 0x17, 0x09, buf))
	assert.Equal(t, []byte{0x50, 0xC3, 0x00, 0xFF}, buf)

	// connection is reused
	require.NoError(t, bus.ReadRegister(context.Background(), 0x17, 0x09, buf))
	assert.Equal(t, [][2]int{{0x17, 1}}, connector.requests)

	require.NoError(t, bus.Close())
	assert.True(t, conn.closed)
}

func TestGobotBus_DefaultBus(t *testing.T) {
	connector := &fakeConnector{conns: map[int]*fakeConnection{0x17: {regs: map[byte][]byte{}}}}
	bus := NewGobotBus(connector, -1)
	require.NoError(t, bus.ReadRegister(context.Background(), 0x17, 0x01, make([]byte, 1)))
	assert.Equal(t, [][2]int{{0x17, 3}}, connector.requests)
}

func TestGobotBus_Errors(t *testing.T) {
	readErr := errors.New("remote I/O error")
	connector := &fakeConnector{conns: map[int]*fakeConnection{0x17: {err: readErr}}}
	bus := NewGobotBus(connector, 1)

	err := bus.ReadRegister(context.Background(), 0x17, 0x04, make([]byte, 1))
	assert.ErrorIs(t, err, readErr)

	err = bus.ReadRegister(context.Background(), 0x18, 0x04, make([]byte, 1))
	assert.Error(t, err)
}
