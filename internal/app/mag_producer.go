// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"log"
	"math"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/relabs-tech/motion_node/internal/config"
	"github.com/relabs-tech/motion_node/internal/sensors"
)

// magPayload is the JSON schema published for hub magnetometer data.
// mx,my,mz are raw LSBs from the external sensor; norm is the vector
// magnitude in the same units.
type magPayload struct {
	Mx   int16   `json:"mx"`
	My   int16   `json:"my"`
	Mz   int16   `json:"mz"`
	Norm float64 `json:"norm"`
	Time string  `json:"time"`
}

// RunMagProducer polls an external magnetometer through the sensor hub
// and publishes its readings. Requires MAG_HUB_I2C_ADDR, MAG_HUB_DATA_REG
// and MAG_SAMPLE_INTERVAL in the config.
func RunMagProducer() error {
	cfg := config.Get()

	if cfg.MagSampleInterval <= 0 || cfg.MagHubAddr == 0 {
		log.Println("mag: sensor hub magnetometer not configured, nothing to do")
		return nil
	}

	mgr := sensors.GetIMUManager()
	if err := mgr.Init(); err != nil {
		log.Fatalf("mag: failed to initialize IMU manager: %v", err)
		return err
	}

	if err := mgr.SetupHubMagnetometer(cfg.MagHubAddr, cfg.MagHubDataReg); err != nil {
		log.Fatalf("mag: sensor hub setup failed: %v", err)
		return err
	}
	log.Printf("mag: polling external magnetometer at 0x%02X reg 0x%02X via sensor hub",
		cfg.MagHubAddr, cfg.MagHubDataReg)

	if cfg.CalibrationFile != "" {
		if err := ApplyMagCalibrationFile(cfg.CalibrationFile); err != nil {
			log.Printf("mag: compensation file %s not applied: %v", cfg.CalibrationFile, err)
		} else {
			log.Printf("mag: compensation applied from %s", cfg.CalibrationFile)
		}
	}

	clientID := cfg.MQTTClientIDMag
	if clientID == "" {
		clientID = "motion-mag-producer"
	}
	opts := mqtt.NewClientOptions().AddBroker(cfg.MQTTBroker).SetClientID(clientID)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mag: MQTT connect error: %v", token.Error())
		return token.Error()
	}
	defer client.Disconnect(250)

	topic := cfg.TopicMag
	if topic == "" {
		topic = "motion/mag"
	}

	ticker := time.NewTicker(time.Duration(cfg.MagSampleInterval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("mag: producer started")
	for t := range ticker.C {
		mag, err := mgr.ReadHubMag()
		if err != nil {
			log.Printf("mag: read error: %v", err)
			continue
		}

		x, y, z := float64(mag[0]), float64(mag[1]), float64(mag[2])
		payload := magPayload{
			Mx:   mag[0],
			My:   mag[1],
			Mz:   mag[2],
			Norm: math.Sqrt(x*x + y*y + z*z),
			Time: t.UTC().Format(time.RFC3339),
		}
		b, err := json.Marshal(payload)
		if err != nil {
			log.Printf("mag: marshal error: %v", err)
			continue
		}
		if token := client.Publish(topic, 0, false, b); token.Wait() && token.Error() != nil {
			log.Printf("mag: MQTT publish error: %v", token.Error())
		}
	}
	return nil
}
