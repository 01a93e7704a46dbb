package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config, err := LoadConfig(WithDefaults())
		require.NoError(t, err)
		require.Equal(t, "/dev/ttyACM0", config.SerialPort)
		require.Equal(t, 115200, config.BaudRate)
		require.Equal(t, "s2e/uplink", config.UplinkTopic)
		require.Equal(t, "s2e/downlink", config.DownlinkTopic)
		require.Empty(t, config.MqttBroker, "MQTT is opt-in")
		require.False(t, config.Provision)
	})

	t.Run("env overrides defaults", func(t *testing.T) {
		t.Setenv("SERIAL_PORT", "/dev/ttyUSB3")
		t.Setenv("BAUD_RATE", "921600")
		t.Setenv("MQTT_BROKER", "tcp://broker:1883")
		t.Setenv("REMOTE_PORT", "6000")

		config, err := LoadConfig(WithDefaults(), WithEnv())
		require.NoError(t, err)
		require.Equal(t, "/dev/ttyUSB3", config.SerialPort)
		require.Equal(t, 921600, config.BaudRate)
		require.Equal(t, "tcp://broker:1883", config.MqttBroker)
		require.Equal(t, 6000, config.RemotePort)
	})

	t.Run("bad env numbers are ignored", func(t *testing.T) {
		t.Setenv("BAUD_RATE", "fast")

		config, err := LoadConfig(WithDefaults(), WithEnv())
		require.NoError(t, err)
		require.Equal(t, 115200, config.BaudRate)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("SERIAL_PORT", "/dev/ttyUSB3")

		fSet := flag.NewFlagSet("test", flag.ContinueOnError)
		fSet.String("serial-port", "/dev/ttyACM0", "")
		fSet.Bool("provision", false, "")
		fSet.String("remote-host", "", "")
		require.NoError(t, fSet.Parse([]string{
			"-serial-port", "/dev/ttyACM7",
			"-provision",
			"-remote-host", "10.0.0.9",
		}))

		config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(fSet))
		require.NoError(t, err)
		require.Equal(t, "/dev/ttyACM7", config.SerialPort)
		require.True(t, config.Provision)
		require.Equal(t, "10.0.0.9", config.RemoteHost)
	})

	t.Run("unset flags do not clobber env", func(t *testing.T) {
		t.Setenv("BAUD_RATE", "57600")

		fSet := flag.NewFlagSet("test", flag.ContinueOnError)
		fSet.Int("baud-rate", 115200, "")
		require.NoError(t, fSet.Parse(nil))

		config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(fSet))
		require.NoError(t, err)
		require.Equal(t, 57600, config.BaudRate)
	})
}
