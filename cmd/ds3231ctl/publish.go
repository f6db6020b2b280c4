package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const publishTimeout = 5 * time.Second

type publisher interface {
	publish(topic string, payload []byte) error
	close()
}

type dialFunc func(broker, clientID string, qos byte) (publisher, error)

// reading is the published message. Time is absent when the clock is unset and Celsius when the temperature could
// not be read.
type reading struct {
	Time    *time.Time `json:"time,omitempty"`
	Valid   bool       `json:"valid"`
	Celsius *float64   `json:"celsius,omitempty"`
}

func (e *env) publishCommand() *cli.Command {
	hostname, _ := os.Hostname()
	return &cli.Command{
		Name:  "publish",
		Usage: "publish the time and temperature to an MQTT broker",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "broker", Usage: "broker URL, e.g. tcp://localhost:1883", Required: true},
			&cli.StringFlag{Name: "topic", Value: "ds3231"},
			&cli.StringFlag{Name: "client-id", Value: "ds3231ctl-" + hostname},
			&cli.IntFlag{Name: "qos", Value: 0},
			&cli.DurationFlag{Name: "interval", Value: time.Minute},
			&cli.IntFlag{Name: "count", Usage: "stop after this many messages, 0 runs until interrupted"},
		},
		Action: func(c *cli.Context) error {
			qos := c.Int("qos")
			if qos < 0 || qos > 2 {
				return errors.Errorf("qos must be 0, 1 or 2, got %d", qos)
			}
			if c.Duration("interval") <= 0 {
				return errors.New("interval must be positive")
			}
			pub, err := e.dial(c.String("broker"), c.String("client-id"), byte(qos))
			if err != nil {
				return err
			}
			defer pub.close()
			return e.publishLoop(c.Context, pub, c.String("topic"), c.Duration("interval"), c.Int("count"))
		},
	}
}

// publishLoop publishes one reading immediately and then one per interval until count readings are sent or ctx is
// done.
func (e *env) publishLoop(ctx context.Context, pub publisher, topic string, interval time.Duration, count int) error {
	ticker := e.clock.Ticker(interval)
	defer ticker.Stop()

	for n := 1; ; n++ {
		if err := pub.publish(topic, e.read()); err != nil {
			return errors.Wrapf(err, "publishing to %q", topic)
		}
		e.logger.Debugw("published", "topic", topic, "n", n)
		if count > 0 && n >= count {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (e *env) read() []byte {
	var r reading
	if t, ok := e.dev.Now(); ok {
		r.Time = &t
		r.Valid = true
	}
	if t, err := e.dev.Temperature(); err == nil {
		c := t.Celsius()
		r.Celsius = &c
	}
	payload, err := json.Marshal(r)
	if err != nil {
		// reading only holds marshalable fields
		panic(err)
	}
	return payload
}

type mqttPublisher struct {
	client mqtt.Client
	qos    byte
}

func dialMQTT(broker, clientID string, qos byte) (publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(publishTimeout)
	client := mqtt.NewClient(opts)
	if tok := client.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, errors.Wrapf(tok.Error(), "connecting to %s", broker)
	}
	return &mqttPublisher{client: client, qos: qos}, nil
}

func (p *mqttPublisher) publish(topic string, payload []byte) error {
	tok := p.client.Publish(topic, p.qos, false, payload)
	if !tok.WaitTimeout(publishTimeout) {
		return errors.Errorf("timed out after %s", publishTimeout)
	}
	return tok.Error()
}

func (p *mqttPublisher) close() {
	p.client.Disconnect(250)
}
