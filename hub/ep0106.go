package hub

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mklimuk/sensorhub"
	"github.com/mklimuk/sensorhub/i2c"
)

type EP0106Opts struct {
	Bus     string
	Address byte
	// Speed is the bus clock in Hz, zero keeps the host setting.
	Speed int64
}

type Opt func(*EP0106Opts)

// WithBus selects the host bus opened by Open. Ignored by New.
func WithBus(bus string) Opt {
	return func(o *EP0106Opts) {
		o.Bus = bus
	}
}

// WithSpeed sets the clock of the bus opened by Open. Ignored by New.
func WithSpeed(hz int64) Opt {
	return func(o *EP0106Opts) {
		o.Speed = hz
	}
}

func WithAddress(address byte) Opt {
	return func(o *EP0106Opts) {
		o.Address = address
	}
}

func defaultOpts(opts []Opt) EP0106Opts {
	config := EP0106Opts{
		Bus:     DefaultBus,
		Address: DefaultAddress,
	}
	for _, opt := range opts {
		opt(&config)
	}
	return config
}

// EP0106 represents the 52Pi EP-0106 sensor hub: NTC thermistor, light sensor,
// DHT11 temperature/humidity, BMP280 barometer and a PIR presence sensor
// behind a single I2C address.
//
// Typical usage:
//
//	h, err := Open()
//	if err != nil { ... }
//	defer h.Close()
//	t, err := h.ExtTemp(ctx)
//
// Every method does one or two blocking register reads. Calls are serialized
// so that a status read and the matching data read are never split by
// another caller.
type EP0106 struct {
	mx     sync.Mutex
	bus    sensorhub.RegisterReader
	addr   byte
	closer io.Closer
}

// New binds the hub to an already opened bus. An address above 0x7F is not
// rejected here, every read on such a hub fails with ErrTransport instead.
func New(bus sensorhub.RegisterReader, opts ...Opt) *EP0106 {
	config := defaultOpts(opts)
	return &EP0106{bus: bus, addr: config.Address}
}

// Open opens the host I2C bus (1 unless WithBus is given) and selects the hub
// address. The returned hub owns the bus and must be closed.
func Open(opts ...Opt) (*EP0106, error) {
	config := defaultOpts(opts)
	if config.Address > maxAddress {
		return nil, errWideAddress(config.Address)
	}
	bus, err := i2c.NewGenericBus(config.Bus)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return attach(bus, config)
}

type clockedBus interface {
	sensorhub.RegisterBus
	SetSpeed(hz int64) error
}

// attach hands bus ownership to the hub, the bus is closed if it cannot be
// configured.
func attach(bus clockedBus, config EP0106Opts) (*EP0106, error) {
	if config.Speed > 0 {
		if err := bus.SetSpeed(config.Speed); err != nil {
			if cerr := bus.Close(); cerr != nil {
				slog.Debug("could not close bus", "error", cerr)
			}
			return nil, fmt.Errorf("%w: %w", ErrTransport, err)
		}
	}
	return &EP0106{bus: bus, addr: config.Address, closer: bus}, nil
}

// Close releases the bus if the hub opened it.
func (h *EP0106) Close() error {
	h.mx.Lock()
	defer h.mx.Unlock()
	if h.closer == nil {
		return nil
	}
	err := h.closer.Close()
	h.closer = nil
	if err != nil {
		return fmt.Errorf("%w: could not close bus: %w", ErrTransport, err)
	}
	return nil
}

func (h *EP0106) Address() byte {
	return h.addr
}

// ExtTemp reads the external NTC thermistor in °C.
// Detection range is -30°C to 127°C.
func (h *EP0106) ExtTemp(ctx context.Context) (int8, error) {
	h.mx.Lock()
	defer h.mx.Unlock()
	status, err := h.readByte(ctx, regStatus)
	if err != nil {
		return 0, err
	}
	if status&statusExtTempOverflow != 0 {
		return 0, ErrExternalTemperatureOverflow
	}
	if status&statusExtTempNotFound != 0 {
		return 0, ErrExternalTemperatureNotFound
	}
	raw, err := h.readByte(ctx, regExtTemp)
	if err != nil {
		return 0, err
	}
	return int8(raw), nil
}

// Brightness reads the light intensity in lux (0 to 1800).
func (h *EP0106) Brightness(ctx context.Context) (uint16, error) {
	h.mx.Lock()
	defer h.mx.Unlock()
	status, err := h.readByte(ctx, regStatus)
	if err != nil {
		return 0, err
	}
	if status&statusBrightnessOverflow != 0 {
		return 0, ErrBrightnessOverflow
	}
	if status&statusBrightnessNotFound != 0 {
		return 0, ErrBrightnessNotFound
	}
	buf, err := h.readWord(ctx, regLightLow)
	if err != nil {
		return 0, err
	}
	lux := uint16(buf[1])<<8 | uint16(buf[0])
	// status bit is not always raised at the sensor ceiling
	if lux >= maxBrightness {
		return 0, ErrBrightnessOverflow
	}
	return lux, nil
}

// OnBoardTemp reads the DHT11 temperature in °C (-20 to 60).
// Out of range readings are reported as ErrExternalTemperatureOverflow, the
// hub has no dedicated kind for the onboard sensor.
func (h *EP0106) OnBoardTemp(ctx context.Context) (int8, error) {
	h.mx.Lock()
	defer h.mx.Unlock()
	raw, err := h.readByte(ctx, regOnBoardTemp)
	if err != nil {
		return 0, err
	}
	temp := int8(raw)
	if temp >= maxOnBoardTemp {
		return 0, ErrExternalTemperatureOverflow
	}
	return temp, nil
}

// OnBoardHumidity reads the DHT11 relative humidity in %RH. The sensor is
// specified for 20-95%RH but the value is returned as is.
func (h *EP0106) OnBoardHumidity(ctx context.Context) (uint8, error) {
	h.mx.Lock()
	defer h.mx.Unlock()
	return h.readByte(ctx, regOnBoardHumidity)
}

// OnBoardSensorStatus returns ErrNotUpToDate when the hub reports the last
// DHT11 sample as stale.
func (h *EP0106) OnBoardSensorStatus(ctx context.Context) error {
	h.mx.Lock()
	defer h.mx.Unlock()
	status, err := h.readByte(ctx, regOnBoardError)
	if err != nil {
		return err
	}
	if status != 0 {
		return ErrNotUpToDate
	}
	return nil
}

// BMP280Temp reads the barometer temperature in °C (-40 to 80).
func (h *EP0106) BMP280Temp(ctx context.Context) (int8, error) {
	h.mx.Lock()
	defer h.mx.Unlock()
	if err := h.checkBarometer(ctx); err != nil {
		return 0, err
	}
	raw, err := h.readByte(ctx, regBMP280Temp)
	if err != nil {
		return 0, err
	}
	temp := int8(raw)
	if temp >= maxBMP280Temp {
		return 0, ErrExternalTemperatureOverflow
	}
	return temp, nil
}

// BMP280Pressure reads the air pressure in Pa (300 to 110000).
func (h *EP0106) BMP280Pressure(ctx context.Context) (uint32, error) {
	h.mx.Lock()
	defer h.mx.Unlock()
	if err := h.checkBarometer(ctx); err != nil {
		return 0, err
	}
	// the hub only answers 4 byte block reads here, the last byte is padding
	buf, err := h.readLong(ctx, regBMP280PressLow)
	if err != nil {
		return 0, err
	}
	pa := uint32(buf[2])<<16 | uint32(buf[1])<<8 | uint32(buf[0])
	if pa >= maxPressure {
		return 0, ErrBarometerValueNotValid
	}
	return pa, nil
}

// HumanDetected reports whether the PIR sensor saw a live body within the
// last 5 seconds.
func (h *EP0106) HumanDetected(ctx context.Context) (bool, error) {
	h.mx.Lock()
	defer h.mx.Unlock()
	raw, err := h.readByte(ctx, regHumanDetect)
	if err != nil {
		return false, err
	}
	return raw == 1, nil
}

func (h *EP0106) checkBarometer(ctx context.Context) error {
	status, err := h.readByte(ctx, regBMP280Status)
	if err != nil {
		return err
	}
	if status != 0 {
		return ErrBarometerValueNotValid
	}
	return nil
}

func (h *EP0106) readByte(ctx context.Context, register byte) (byte, error) {
	var buf [1]byte
	err := h.readBlock(ctx, register, buf[:])
	return buf[0], err
}

func (h *EP0106) readWord(ctx context.Context, register byte) ([2]byte, error) {
	var buf [2]byte
	err := h.readBlock(ctx, register, buf[:])
	return buf, err
}

func (h *EP0106) readLong(ctx context.Context, register byte) ([4]byte, error) {
	var buf [4]byte
	err := h.readBlock(ctx, register, buf[:])
	return buf, err
}

func (h *EP0106) readBlock(ctx context.Context, register byte, buf []byte) error {
	if h.addr > maxAddress {
		return errWideAddress(h.addr)
	}
	err := h.bus.ReadRegister(ctx, h.addr, register, buf)
	if err != nil {
		return fmt.Errorf("%w: read %d bytes at %#02x: %w", ErrTransport, len(buf), register, err)
	}
	slog.Debug("ep0106 register read", "register", fmt.Sprintf("%#02x", register), "data", fmt.Sprintf("% x", buf))
	return nil
}

func errWideAddress(addr byte) error {
	return fmt.Errorf("%w: address %#x is not a 7-bit address", ErrTransport, addr)
}
