// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "motion_config.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
# motion node configuration
MQTT_BROKER=tcp://localhost:1883
MQTT_CLIENT_ID_PRODUCER=motion-producer

TOPIC_MOTION=motion/imu
TOPIC_STEPS=motion/steps
TOPIC_EVENTS=motion/events

IMU_TRANSPORT=spi
IMU_SPI_DEVICE=/dev/spidev0.0
IMU_SPI_SPEED_HZ=8000000

IMU_ACCEL_RATE=0x04
IMU_ACCEL_SCALE=2
IMU_GYRO_RATE=0x04
IMU_GYRO_SCALE=6

FIFO_WATERMARK=256
FIFO_MODE=6

PEDO_MODE=0x11
PEDO_DEBOUNCE_STEPS=10

TAP_ENABLED=true
TAP_THRESHOLD=9
DOUBLE_TAP_ENABLED=true

IMU_SAMPLE_INTERVAL=100
WEB_SERVER_PORT=8080
REGISTER_DEBUG_ALLOWED_RANGES=0x10-0x19,0x56-0x5F
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "tcp://localhost:1883", cfg.MQTTBroker)
	assert.Equal(t, "motion/imu", cfg.TopicMotion)
	assert.Equal(t, "spi", cfg.IMUTransport)
	assert.Equal(t, int64(8_000_000), cfg.IMUSPISpeedHz)
	assert.Equal(t, byte(0x04), cfg.IMUAccelRate)
	assert.Equal(t, byte(2), cfg.IMUAccelScale)
	assert.Equal(t, byte(6), cfg.IMUGyroScale)
	assert.Equal(t, uint16(256), cfg.FIFOWatermark)
	assert.Equal(t, byte(0x11), cfg.PedoMode)
	assert.True(t, cfg.TapEnabled)
	assert.Equal(t, byte(9), cfg.TapThreshold)
	assert.Equal(t, 100, cfg.IMUSampleInterval)
	assert.Equal(t, "0x10-0x19,0x56-0x5F", cfg.RegisterDebugAllowedRanges)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, validConfig+"\nNO_SUCH_KEY=1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NO_SUCH_KEY")
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	_, err := Load(writeConfig(t, validConfig+"\nbroken line\n"))
	require.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		mangle  func(string) string
		wantErr string
	}{
		{"missing broker", func(s string) string {
			return replaceLine(s, "MQTT_BROKER=tcp://localhost:1883", "")
		}, "MQTT_BROKER"},
		{"missing transport", func(s string) string {
			return replaceLine(s, "IMU_TRANSPORT=spi", "")
		}, "IMU_TRANSPORT"},
		{"spi without device", func(s string) string {
			return replaceLine(s, "IMU_SPI_DEVICE=/dev/spidev0.0", "")
		}, "IMU_SPI_DEVICE"},
		{"bad gyro scale", func(s string) string {
			return replaceLine(s, "IMU_GYRO_SCALE=6", "IMU_GYRO_SCALE=3")
		}, "IMU_GYRO_SCALE"},
		{"bad pedo mode", func(s string) string {
			return replaceLine(s, "PEDO_MODE=0x11", "PEDO_MODE=0x21")
		}, "PEDO_MODE"},
		{"watermark too large", func(s string) string {
			return replaceLine(s, "FIFO_WATERMARK=256", "FIFO_WATERMARK=512")
		}, "FIFO_WATERMARK"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.mangle(validConfig)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func replaceLine(s, old, new string) string {
	return strings.Replace(s, "\n"+old+"\n", "\n"+new+"\n", 1)
}
