// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package imu

// Sample is a single raw accel+gyro+temperature reading.
type Sample struct {
	Source string `json:"source"` // "spi", "i2c" or "mock"

	Ax int16 `json:"ax"` // accel
	Ay int16 `json:"ay"`
	Az int16 `json:"az"`

	Gx int16 `json:"gx"` // gyro
	Gy int16 `json:"gy"`
	Gz int16 `json:"gz"`

	Temp int16 `json:"temp"` // raw temperature LSBs

	// Converted values, filled by the producer from the active
	// full-scale configuration.
	AxMilliG   float64 `json:"ax_mg"`
	AyMilliG   float64 `json:"ay_mg"`
	AzMilliG   float64 `json:"az_mg"`
	GxMilliDPS float64 `json:"gx_mdps"`
	GyMilliDPS float64 `json:"gy_mdps"`
	GzMilliDPS float64 `json:"gz_mdps"`
	TempC      float64 `json:"temp_c"`
}

// StepCount is the pedometer reading published on the steps topic.
type StepCount struct {
	Steps uint16 `json:"steps"`
	Time  string `json:"time"`
}

// Event is a single detected motion event: tap, wake-up, free fall or
// step, as published on the events topic.
type Event struct {
	Type string `json:"type"` // "single_tap", "double_tap", "wake_up", "free_fall", "step"
	Axis string `json:"axis,omitempty"`
	Sign string `json:"sign,omitempty"` // tap polarity, "+" or "-"
	Time string `json:"time"`
}

// SampleSource is anything that can provide raw samples over time.
type SampleSource interface {
	Next() (Sample, error)
}

// MagCalibration is the magnetometer compensation parameter set loaded
// from the calibration JSON file and programmed into the sensor hub
// compensation block.
type MagCalibration struct {
	Sensitivity uint16   `json:"sensitivity"` // 2^-10 gauss/LSB units
	Offsets     [3]int16 `json:"offsets"`     // hard-iron, x/y/z
	SoftIron    [6]int16 `json:"soft_iron"`   // symmetric matrix, xx xy xz yy yz zz
	OrientX     byte     `json:"orient_x"`    // axis order codes, 0=X 1=Y 2=Z
	OrientY     byte     `json:"orient_y"`
	OrientZ     byte     `json:"orient_z"`
}
