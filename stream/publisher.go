package stream

import (
	"errors"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

// ErrPublishTimeout is returned when the broker does not acknowledge a frame
// in time.
var ErrPublishTimeout = errors.New("stream: publish timed out")

// A Publisher delivers encoded frames.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// MQTTPublisher publishes frames to an MQTT broker.
type MQTTPublisher struct {
	QoS      byte
	Retained bool
	Timeout  time.Duration

	client mqtt.Client
}

// NewMQTTPublisher creates an instance of an MQTTPublisher that publishes at
// QoS 2 and waits up to two seconds per frame.
func NewMQTTPublisher(client mqtt.Client) *MQTTPublisher {
	p := new(MQTTPublisher)
	p.client = client
	p.QoS = 2
	p.Timeout = 2 * time.Second
	return p
}

// Publish implements Publisher.
func (p *MQTTPublisher) Publish(topic string, payload []byte) error {
	token := p.client.Publish(topic, p.QoS, p.Retained, payload)
	if !token.WaitTimeout(p.Timeout) {
		return ErrPublishTimeout
	}
	return token.Error()
}
