// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"
	"time"

	"github.com/relabs-tech/motion_node/internal/config"
	"github.com/relabs-tech/motion_node/internal/sensors"
)

// RunLocalConsole prints samples straight from the device without MQTT.
// With IMU_TRANSPORT=mock this runs anywhere, which makes it the
// quickest smoke test of the full driver stack.
func RunLocalConsole() error {
	cfg := config.Get()

	mgr := sensors.GetIMUManager()
	if err := mgr.Init(); err != nil {
		return err
	}
	log.Println("console: reading directly from device")

	interval := cfg.ConsoleLogInterval
	if interval <= 0 {
		interval = cfg.IMUSampleInterval
	}
	ticker := time.NewTicker(time.Duration(interval) * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		s, err := mgr.ReadSample()
		if err != nil {
			return err
		}

		fmt.Printf(
			"ax=%6d ay=%6d az=%6d  gx=%6d gy=%6d gz=%6d  temp=%5.2f°C\n",
			s.Ax, s.Ay, s.Az, s.Gx, s.Gy, s.Gz, s.TempC,
		)
	}
	return nil
}
