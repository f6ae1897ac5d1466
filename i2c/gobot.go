package i2c

import (
	"context"
	"fmt"
	"sync"

	"github.com/mklimuk/sensorhub"
	"gobot.io/x/gobot/v2/drivers/i2c"
)

var _ sensorhub.RegisterBus = &GobotBus{}

// GobotBus adapts a gobot I2C connector (raspi, nanopi, ...) to the sensorhub
// bus interfaces. Gobot hands out one connection per device address, those are
// opened lazily and kept until Close.
type GobotBus struct {
	mx        sync.Mutex
	connector i2c.Connector
	busNr     int
	conns     map[byte]i2c.Connection
}

// NewGobotBus expects an already connected adaptor. A negative busNr selects
// the adaptor's default bus.
func NewGobotBus(connector i2c.Connector, busNr int) *GobotBus {
	if busNr < 0 {
		busNr = connector.DefaultI2cBus()
	}
	return &GobotBus{
		connector: connector,
		busNr:     busNr,
		conns:     make(map[byte]i2c.Connection),
	}
}

func (b *GobotBus) conn(address byte) (i2c.Connection, error) {
	if c, ok := b.conns[address]; ok {
		return c, nil
	}
	c, err := b.connector.GetI2cConnection(int(address), b.busNr)
	if err != nil {
		return nil, fmt.Errorf("could not get connection to %x on bus %d: %w", address, b.busNr, err)
	}
	b.conns[address] = c
	return c, nil
}

func (b *GobotBus) ReadRegister(ctx context.Context, address byte, register byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	c, err := b.conn(address)
	if err != nil {
		return err
	}
	err = c.ReadBlockData(register, buffer)
	if err != nil {
		return fmt.Errorf("could not read register %#02x of %x: %w", register, address, err)
	}
	return nil
}

// Close closes every connection opened so far. The adaptor itself is left to
// the caller (Finalize).
func (b *GobotBus) Close() error {
	b.mx.Lock()
	defer b.mx.Unlock()
	var firstErr error
	for addr, c := range b.conns {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("could not close connection to %x: %w", addr, err)
		}
		delete(b.conns, addr)
	}
	return firstErr
}
