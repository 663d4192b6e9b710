package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/motion_node/internal/config"
	"github.com/relabs-tech/motion_node/internal/imu"
)

func RunConsoleMQTT() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	// Subscribe to motion samples
	motionToken := client.Subscribe(cfg.TopicMotion, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s imu.Sample
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("console: sample unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[IMU ]  ax=%6d ay=%6d az=%6d  gx=%6d gy=%6d gz=%6d  (%7.1f/%7.1f/%7.1f mg)  temp=%5.2f°C\n",
			s.Ax, s.Ay, s.Az, s.Gx, s.Gy, s.Gz,
			s.AxMilliG, s.AyMilliG, s.AzMilliG, s.TempC,
		)
	})
	motionToken.Wait()
	if motionToken.Error() != nil {
		return motionToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicMotion)

	// Subscribe to step counts
	if cfg.TopicSteps != "" {
		stepToken := client.Subscribe(cfg.TopicSteps, 0, func(_ mqtt.Client, msg mqtt.Message) {
			var sc imu.StepCount
			if err := json.Unmarshal(msg.Payload(), &sc); err != nil {
				log.Printf("console: step count unmarshal error: %v", err)
				return
			}

			fmt.Printf("[STEP]  steps=%d  time=%s\n", sc.Steps, sc.Time)
		})
		stepToken.Wait()
		if stepToken.Error() != nil {
			return stepToken.Error()
		}
		log.Printf("console: subscribed to %s", cfg.TopicSteps)
	}

	// Subscribe to motion events
	if cfg.TopicEvents != "" {
		eventToken := client.Subscribe(cfg.TopicEvents, 0, func(_ mqtt.Client, msg mqtt.Message) {
			var ev imu.Event
			if err := json.Unmarshal(msg.Payload(), &ev); err != nil {
				log.Printf("console: event unmarshal error: %v", err)
				return
			}

			fmt.Printf("[EVNT]  %-10s axis=%s sign=%s time=%s\n", ev.Type, ev.Axis, ev.Sign, ev.Time)
		})
		eventToken.Wait()
		if eventToken.Error() != nil {
			return eventToken.Error()
		}
		log.Printf("console: subscribed to %s", cfg.TopicEvents)
	}

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
