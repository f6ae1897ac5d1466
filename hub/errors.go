package hub

import "errors"

// ErrTransport wraps every failure coming from the bus itself.
var ErrTransport = errors.New("ep0106: i2c transport error")

var (
	ErrExternalTemperatureOverflow = errors.New("ep0106: external temperature overflow")
	ErrExternalTemperatureNotFound = errors.New("ep0106: external temperature sensor is not connected")
	ErrBrightnessOverflow          = errors.New("ep0106: brightness overflow")
	ErrBrightnessNotFound          = errors.New("ep0106: brightness sensor not found")
	ErrNotUpToDate                 = errors.New("ep0106: onboard temperature and humidity sensor data may not be up to date")
	ErrBarometerValueNotValid      = errors.New("ep0106: bmp280 barometer returned a value that is not valid")
)
