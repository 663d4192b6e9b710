// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

// Sensitivity conversions from raw LSBs to engineering units, per the
// LSM6DSO32 datasheet.

func FS4ToMilliG(lsb int16) float64   { return float64(lsb) * 0.122 }
func FS8ToMilliG(lsb int16) float64   { return float64(lsb) * 0.244 }
func FS16ToMilliG(lsb int16) float64  { return float64(lsb) * 0.488 }
func FS32ToMilliG(lsb int16) float64  { return float64(lsb) * 0.976 }

func FS125ToMilliDPS(lsb int16) float64  { return float64(lsb) * 4.375 }
func FS250ToMilliDPS(lsb int16) float64  { return float64(lsb) * 8.75 }
func FS500ToMilliDPS(lsb int16) float64  { return float64(lsb) * 17.50 }
func FS1000ToMilliDPS(lsb int16) float64 { return float64(lsb) * 35.0 }
func FS2000ToMilliDPS(lsb int16) float64 { return float64(lsb) * 70.0 }

// LSBToCelsius converts a raw temperature sample (256 LSB/°C, 0 at 25°C).
func LSBToCelsius(lsb int16) float64 { return float64(lsb)/256.0 + 25.0 }

// LSBToNanoseconds converts a timestamp delta (25 µs per LSB).
func LSBToNanoseconds(lsb uint32) float64 { return float64(lsb) * 25000.0 }

// AccelToMilliG applies the conversion for the given full-scale range.
func AccelToMilliG(lsb int16, fs AccelScale) float64 {
	switch fs {
	case AccelScale8G:
		return FS8ToMilliG(lsb)
	case AccelScale16G:
		return FS16ToMilliG(lsb)
	case AccelScale32G:
		return FS32ToMilliG(lsb)
	default:
		return FS4ToMilliG(lsb)
	}
}

// GyroToMilliDPS applies the conversion for the given full-scale range.
func GyroToMilliDPS(lsb int16, fs GyroScale) float64 {
	switch fs {
	case GyroScale125DPS:
		return FS125ToMilliDPS(lsb)
	case GyroScale500DPS:
		return FS500ToMilliDPS(lsb)
	case GyroScale1000DPS:
		return FS1000ToMilliDPS(lsb)
	case GyroScale2000DPS:
		return FS2000ToMilliDPS(lsb)
	default:
		return FS250ToMilliDPS(lsb)
	}
}
