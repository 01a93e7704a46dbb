package main

import (
	"flag"
	"os"
	"strconv"
)

// Config holds the gateway configuration
type Config struct {
	// SerialPort is the path to the module's serial port (e.g. "/dev/ttyACM0")
	SerialPort string
	// BaudRate is the baud rate for serial communication with the module (e.g. 115200)
	BaudRate int
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string

	// MqttBroker is the broker URL (e.g. "tcp://localhost:1883"); empty disables MQTT
	MqttBroker string
	// MqttClientID identifies this gateway to the broker
	MqttClientID string
	// MqttUser and MqttPass are optional broker credentials
	MqttUser string
	MqttPass string
	// UplinkTopic receives data arriving from the module's TCP peer
	UplinkTopic string
	// DownlinkTopic carries payloads to forward to the module's TCP peer
	DownlinkTopic string

	// Provision, when true, pushes the network settings below to the module,
	// saves them and reboots it before bridging
	Provision bool
	// RemoteHost and RemotePort are the TCP peer the module connects to
	RemoteHost string
	RemotePort int
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.SerialPort = "/dev/ttyACM0"
		c.BaudRate = 115200
		c.LogLevel = "info"
		c.MqttClientID = "s2e-gw-1"
		c.UplinkTopic = "s2e/uplink"
		c.DownlinkTopic = "s2e/downlink"
		c.RemoteHost = "192.168.11.3"
		c.RemotePort = 5000
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if serial := os.Getenv("SERIAL_PORT"); serial != "" {
			c.SerialPort = serial
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if broker := os.Getenv("MQTT_BROKER"); broker != "" {
			c.MqttBroker = broker
		}

		if id := os.Getenv("MQTT_CLIENT_ID"); id != "" {
			c.MqttClientID = id
		}

		if user := os.Getenv("MQTT_USERNAME"); user != "" {
			c.MqttUser = user
		}

		if pass := os.Getenv("MQTT_PASSWORD"); pass != "" {
			c.MqttPass = pass
		}

		if topic := os.Getenv("UPLINK_TOPIC"); topic != "" {
			c.UplinkTopic = topic
		}

		if topic := os.Getenv("DOWNLINK_TOPIC"); topic != "" {
			c.DownlinkTopic = topic
		}

		if host := os.Getenv("REMOTE_HOST"); host != "" {
			c.RemoteHost = host
		}

		if port := os.Getenv("REMOTE_PORT"); port != "" {
			if p, err := strconv.Atoi(port); err == nil {
				c.RemotePort = p
			}
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		fSet.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "serial-port":
				c.SerialPort = f.Value.String()
			case "baud-rate":
				if b, err := strconv.Atoi(f.Value.String()); err == nil {
					c.BaudRate = b
				}
			case "log-level":
				c.LogLevel = f.Value.String()
			case "mqtt-broker":
				c.MqttBroker = f.Value.String()
			case "mqtt-client-id":
				c.MqttClientID = f.Value.String()
			case "uplink-topic":
				c.UplinkTopic = f.Value.String()
			case "downlink-topic":
				c.DownlinkTopic = f.Value.String()
			case "provision":
				c.Provision = f.Value.String() == "true"
			case "remote-host":
				c.RemoteHost = f.Value.String()
			case "remote-port":
				if p, err := strconv.Atoi(f.Value.String()); err == nil {
					c.RemotePort = p
				}
			}

		})
		return nil
	}

}
