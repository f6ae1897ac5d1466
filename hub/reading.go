package hub

import (
	"context"
	"time"
)

// Value holds either a sensor value or the error that prevented reading it.
type Value[T any] struct {
	Value T
	Err   error
}

func newValue[T any](v T, err error) Value[T] {
	if err != nil {
		var zero T
		return Value[T]{Value: zero, Err: err}
	}
	return Value[T]{Value: v}
}

func (v Value[T]) OK() bool {
	return v.Err == nil
}

// MarshalYAML renders the bare value, or an error mapping when the read failed.
func (v Value[T]) MarshalYAML() (interface{}, error) {
	if v.Err != nil {
		return map[string]string{"error": v.Err.Error()}, nil
	}
	return v.Value, nil
}

// Reading is a single pass over every sensor of the hub.
type Reading struct {
	Time            time.Time     `yaml:"time"`
	ExtTemp         Value[int8]   `yaml:"external_temperature"`
	Brightness      Value[uint16] `yaml:"brightness"`
	OnBoardTemp     Value[int8]   `yaml:"onboard_temperature"`
	OnBoardHumidity Value[uint8]  `yaml:"onboard_humidity"`
	OnBoardUpToDate Value[bool]   `yaml:"onboard_up_to_date"`
	BMP280Temp      Value[int8]   `yaml:"barometer_temperature"`
	BMP280Pressure  Value[uint32] `yaml:"barometer_pressure"`
	HumanDetected   Value[bool]   `yaml:"human_detected"`
}

// ReadAll reads every sensor once. A failing sensor does not stop the pass,
// its error is kept in the matching field.
func (h *EP0106) ReadAll(ctx context.Context) Reading {
	r := Reading{Time: time.Now()}
	r.ExtTemp = newValue(h.ExtTemp(ctx))
	r.Brightness = newValue(h.Brightness(ctx))
	r.OnBoardTemp = newValue(h.OnBoardTemp(ctx))
	r.OnBoardHumidity = newValue(h.OnBoardHumidity(ctx))
	err := h.OnBoardSensorStatus(ctx)
	r.OnBoardUpToDate = newValue(err == nil, err)
	r.BMP280Temp = newValue(h.BMP280Temp(ctx))
	r.BMP280Pressure = newValue(h.BMP280Pressure(ctx))
	r.HumanDetected = newValue(h.HumanDetected(ctx))
	return r
}
