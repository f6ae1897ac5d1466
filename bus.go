package sensorhub

import (
	"context"
	"fmt"
	"io"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

// RegisterReader reads len(buffer) bytes starting at register of the device
// at address. The register pointer write and the read happen in one
// transaction (repeated start) so multi-byte registers are read atomically.
type RegisterReader interface {
	ReadRegister(ctx context.Context, address byte, register byte, buffer []byte) error
}

// RegisterBus is a register reader holding host resources until closed.
type RegisterBus interface {
	RegisterReader
	io.Closer
}
