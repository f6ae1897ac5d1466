package i2c

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mklimuk/sensorhub"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

var _ sensorhub.RegisterBus = &GenericBus{}

// GenericBus is a host I2C bus (/dev/i2c-N on linux) driven through periph.io.
type GenericBus struct {
	bus i2c.BusCloser
}

// NewGenericBus initializes host drivers and opens the bus. dev accepts
// anything i2creg understands: a bus number ("1"), a name or "" for the
// first available bus.
func NewGenericBus(dev string) (*GenericBus, error) {
	state, err := host.Init()
	if err != nil {
		return nil, fmt.Errorf("could not init host: %w", err)
	}
	for _, driver := range state.Loaded {
		slog.Debug("host driver loaded", "driver", driver.String())
	}
	bus, err := i2creg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("could not open i2c bus %q: %w", dev, err)
	}
	return &GenericBus{
		bus: bus,
	}, nil
}

func (b *GenericBus) ReadRegister(ctx context.Context, address byte, register byte, buffer []byte) error {
	err := b.bus.Tx(uint16(address), []byte{register}, buffer)
	if err != nil {
		return fmt.Errorf("could not read register %#02x of %x: %w", register, address, err)
	}
	return nil
}

// SetSpeed changes the bus clock, freq is in Hz.
func (b *GenericBus) SetSpeed(freq int64) error {
	err := b.bus.SetSpeed(physic.Frequency(freq) * physic.Hertz)
	if err != nil {
		return fmt.Errorf("could not set bus speed: %w", err)
	}
	return nil
}

func (b *GenericBus) Close() error {
	return b.bus.Close()
}
