package hub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReadAll_KeepsGoingOnErrors(t *testing.T) {
	busErr := errors.New("bus down")
	regs := &registerMap{fail: map[byte]error{regHumanDetect: busErr}}
	regs.regs[regStatus] = statusExtTempNotFound | statusBrightnessOverflow
	regs.regs[regOnBoardTemp] = 0x15
	regs.regs[regOnBoardHumidity] = 0x30
	regs.regs[regOnBoardError] = 0x01
	regs.regs[regBMP280Status] = 0x01

	r := New(regs).ReadAll(context.Background())

	assert.ErrorIs(t, r.ExtTemp.Err, ErrExternalTemperatureNotFound)
	assert.ErrorIs(t, r.Brightness.Err, ErrBrightnessOverflow)
	assert.True(t, r.OnBoardTemp.OK())
	assert.Equal(t, int8(21), r.OnBoardTemp.Value)
	assert.Equal(t, uint8(48), r.OnBoardHumidity.Value)
	assert.ErrorIs(t, r.OnBoardUpToDate.Err, ErrNotUpToDate)
	assert.False(t, r.OnBoardUpToDate.Value)
	assert.ErrorIs(t, r.BMP280Temp.Err, ErrBarometerValueNotValid)
	assert.ErrorIs(t, r.BMP280Pressure.Err, ErrBarometerValueNotValid)
	assert.ErrorIs(t, r.HumanDetected.Err, ErrTransport)
	assert.False(t, r.HumanDetected.Value)
}

func TestReading_YAML(t *testing.T) {
	r := Reading{
		Time:            time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		ExtTemp:         newValue(int8(-5), nil),
		Brightness:      newValue(uint16(0), ErrBrightnessNotFound),
		OnBoardTemp:     newValue(int8(0), nil),
		OnBoardHumidity: newValue(uint8(40), nil),
		OnBoardUpToDate: newValue(true, nil),
		BMP280Temp:      newValue(int8(22), nil),
		BMP280Pressure:  newValue(uint32(100500), nil),
		HumanDetected:   newValue(false, nil),
	}
	out, err := yaml.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, -5, decoded["external_temperature"])
	assert.Equal(t, map[string]interface{}{"error": ErrBrightnessNotFound.Error()}, decoded["brightness"])
	assert.Equal(t, 0, decoded["onboard_temperature"])
	assert.Equal(t, 40, decoded["onboard_humidity"])
	assert.Equal(t, true, decoded["onboard_up_to_date"])
	assert.Equal(t, 100500, decoded["barometer_pressure"])
	assert.Equal(t, false, decoded["human_detected"])
}
