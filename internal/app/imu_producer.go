package app

import (
	"encoding/json"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/relabs-tech/motion_node/internal/config"
	"github.com/relabs-tech/motion_node/internal/sensors"
)

func RunMotionProducer() error {
	log.Println("starting motion-node IMU producer")

	cfg := config.Get()

	imuManager := sensors.GetIMUManager()
	if err := imuManager.Init(); err != nil {
		log.Fatalf("failed to initialize IMU manager: %v", err)
		return err
	}

	// --- connect to MQTT ---
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDProducer)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("MQTT connect error: %v", token.Error())
		return token.Error()
	}
	defer client.Disconnect(250)

	log.Println("connected to MQTT, starting publish loop")

	// Steps are published on their own slower cadence
	stepInterval := time.Duration(cfg.StepPublishInterval) * time.Millisecond
	if stepInterval == 0 {
		stepInterval = 5 * time.Second
	}
	lastStepPublish := time.Time{}

	ticker := time.NewTicker(time.Duration(cfg.IMUSampleInterval) * time.Millisecond)
	defer ticker.Stop()

	for t := range ticker.C {
		// 1) Motion sample
		sample, err := imuManager.ReadSample()
		if err != nil {
			log.Printf("IMU sample read error: %v", err)
			continue
		}

		if payload, err := json.Marshal(sample); err != nil {
			log.Printf("sample marshal error: %v", err)
			continue
		} else {
			if token := client.Publish(cfg.TopicMotion, 0, true, payload); token.Wait() && token.Error() != nil {
				log.Printf("MQTT publish error (motion): %v", token.Error())
				continue
			}
		}

		// 2) Temperature on its own topic, if configured
		if cfg.TopicTemperature != "" {
			temp := struct {
				TempC float64 `json:"temp_c"`
				Time  string  `json:"time"`
			}{
				TempC: sample.TempC,
				Time:  t.Format(time.RFC3339),
			}
			if payload, err := json.Marshal(temp); err != nil {
				log.Printf("temperature marshal error: %v", err)
			} else {
				client.Publish(cfg.TopicTemperature, 0, true, payload)
			}
		}

		// 3) Motion events (taps, wake-up, free fall, steps)
		if cfg.TopicEvents != "" {
			events, err := imuManager.Events()
			if err != nil {
				log.Printf("IMU event read error: %v", err)
			} else {
				for _, ev := range events {
					if payload, err := json.Marshal(ev); err != nil {
						log.Printf("event marshal error: %v", err)
					} else if token := client.Publish(cfg.TopicEvents, 0, false, payload); token.Wait() && token.Error() != nil {
						log.Printf("MQTT publish error (events): %v", token.Error())
					} else {
						log.Printf("event: %s axis=%s sign=%s", ev.Type, ev.Axis, ev.Sign)
					}
				}
			}
		}

		// 4) Step count, on the slower cadence
		if cfg.TopicSteps != "" && cfg.PedoMode != 0 && t.Sub(lastStepPublish) >= stepInterval {
			steps, err := imuManager.Steps()
			if err != nil {
				log.Printf("IMU step count read error: %v", err)
			} else if payload, err := json.Marshal(steps); err != nil {
				log.Printf("step count marshal error: %v", err)
			} else {
				if token := client.Publish(cfg.TopicSteps, 0, true, payload); token.Wait() && token.Error() != nil {
					log.Printf("MQTT publish error (steps): %v", token.Error())
				} else {
					lastStepPublish = t
				}
			}
		}

		log.Printf("%s tick: accel ax=%d ay=%d az=%d (%.1f/%.1f/%.1f mg) | gyro gx=%d gy=%d gz=%d | temp %.2f°C",
			t.Format(time.RFC3339),
			sample.Ax, sample.Ay, sample.Az,
			sample.AxMilliG, sample.AyMilliG, sample.AzMilliG,
			sample.Gx, sample.Gy, sample.Gz,
			sample.TempC,
		)
	}
	return nil
}
