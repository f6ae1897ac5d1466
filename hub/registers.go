package hub

// DefaultBus and DefaultAddress are where the EP-0106 sits on a Raspberry Pi.
const (
	DefaultBus     = "1"
	DefaultAddress = 0x17

	// highest 7-bit I2C address
	maxAddress = 0x7F
)

// Register map. Multi-byte values are little endian and start at the low
// byte register; light high byte lives at 0x03, pressure mid/high at 0x0A/0x0B.
const (
	regExtTemp         byte = 0x01
	regLightLow        byte = 0x02
	regStatus          byte = 0x04
	regOnBoardTemp     byte = 0x05
	regOnBoardHumidity byte = 0x06
	regOnBoardError    byte = 0x07
	regBMP280Temp      byte = 0x08
	regBMP280PressLow  byte = 0x09
	regBMP280Status    byte = 0x0C
	regHumanDetect     byte = 0x0D
)

// Status register (0x04) bits
const (
	statusExtTempOverflow    = 0x01
	statusExtTempNotFound    = 0x02
	statusBrightnessOverflow = 0x04
	statusBrightnessNotFound = 0x08
)

// Upper bounds of the sensors, readings at or above are rejected.
const (
	maxBrightness  = 1800   // lux
	maxOnBoardTemp = 60     // DHT11, °C
	maxBMP280Temp  = 80     // °C
	maxPressure    = 110000 // Pa
)
