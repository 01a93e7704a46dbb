// Command s2egw bridges a W55RP20-S2E module to an MQTT broker. Bytes
// arriving from the module's TCP peer are published on the uplink topic;
// payloads received on the downlink topic are written back out through
// the module. With -provision it first pushes the TCP client settings,
// saves them and reboots the module before bridging.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/phsym/console-slog"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/wiznet-go/s2e"
	"github.com/wiznet-go/s2e/at"
	"github.com/wiznet-go/s2e/uart"
)

const (
	rebootSettle    = 3 * time.Second
	recvPoll        = 20 * time.Millisecond
	dedupTTL        = time.Minute
	maxSendAttempts = 3
)

func main() {
	flag.String("serial-port", "/dev/ttyACM0", "Serial port the module is attached to")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("mqtt-broker", "", "MQTT broker URL (e.g. tcp://localhost:1883)")
	flag.String("mqtt-client-id", "s2e-gw-1", "MQTT client ID")
	flag.String("uplink-topic", "s2e/uplink", "Topic for data received from the module")
	flag.String("downlink-topic", "s2e/downlink", "Topic for data to send through the module")
	flag.Bool("provision", false, "Provision the module's TCP client settings before bridging")
	flag.String("remote-host", "192.168.11.3", "TCP peer host to provision")
	flag.Int("remote-port", 5000, "TCP peer port to provision")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{Level: logLevel}))

	if config.MqttBroker == "" {
		logger.Error("No MQTT broker configured, nothing to bridge to")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, config, logger); err != nil {
		logger.Error("Gateway failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, config *Config, logger *slog.Logger) error {
	port, err := uart.Open(config.SerialPort, config.BaudRate)
	if err != nil {
		return fmt.Errorf("open %s: %w", config.SerialPort, err)
	}
	defer port.Close()

	link := uart.New(port, uart.Config{})
	drv, err := s2e.New(link, s2e.WithLogger(logger.With("component", "driver")))
	if err != nil {
		return err
	}

	if config.Provision {
		if err := provision(ctx, drv, config, logger); err != nil {
			return fmt.Errorf("provision module: %w", err)
		}
	}

	gw := &gateway{
		drv:      drv,
		logger:   logger,
		config:   config,
		downlink: make(chan job, 64),
		seen:     xsync.NewMapOf[uint16, time.Time](),
	}

	cli, err := gw.connectMQTT(ctx)
	if err != nil {
		return err
	}
	defer cli.Disconnect(500)

	logger.Info("Bridging", "serial", config.SerialPort,
		"uplink", config.UplinkTopic, "downlink", config.DownlinkTopic)
	return gw.bridge(ctx, cli)
}

// provision pushes the TCP client network settings, saves them and
// reboots the module, then waits for it to report an established
// connection before dropping back to data mode.
func provision(ctx context.Context, drv *s2e.Driver, config *Config, logger *slog.Logger) error {
	if err := drv.EnterCommandMode(); err != nil {
		return err
	}

	settings := []struct{ code, param string }{
		{at.CmdNetMode, "0"}, // TCP client
		{at.CmdIPAlloc, "1"}, // DHCP
		{at.CmdRemoteHost, config.RemoteHost},
		{at.CmdRemotePort, strconv.Itoa(config.RemotePort)},
		{at.CmdSave, ""},
		{at.CmdReboot, ""},
	}
	for _, s := range settings {
		logger.Info("Provisioning", "code", s.code, "param", s.param)
		if out := drv.SendCommand(s.code, s.param); !out.OK() {
			return fmt.Errorf("%s%s: %s: %w", s.code, s.param, out.Status, out.Err)
		}
	}

	time.Sleep(rebootSettle)

	if err := drv.EnterCommandMode(); err != nil {
		return err
	}
	logger.Info("Waiting for TCP connection", "host", config.RemoteHost, "port", config.RemotePort)
	if err := drv.WaitForStatus(ctx, at.StatusConnect, s2e.PollConfig{}); err != nil {
		return err
	}
	return drv.ExitCommandMode()
}

// job is one downlink payload with its delivery attempt count.
type job struct {
	payload  []byte
	attempts int
}

// gateway owns the driver. All driver calls happen on the bridge
// goroutine; the MQTT handler only feeds the downlink channel.
type gateway struct {
	drv      *s2e.Driver
	logger   *slog.Logger
	config   *Config
	downlink chan job

	// seen tracks recently handled downlink message IDs. QoS 1 redelivers
	// on reconnect and the handler runs on paho's goroutines, so the map
	// must take concurrent access.
	seen *xsync.MapOf[uint16, time.Time]
}

func (g *gateway) connectMQTT(ctx context.Context) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(g.config.MqttBroker)
	opts.SetClientID(g.config.MqttClientID)
	if g.config.MqttUser != "" {
		opts.SetUsername(g.config.MqttUser)
		opts.SetPassword(g.config.MqttPass)
	}
	opts.SetOrderMatters(false)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		g.logger.Warn("MQTT connection lost", "error", err)
	})
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		g.logger.Info("MQTT connected, subscribing", "topic", g.config.DownlinkTopic)
		token := c.Subscribe(g.config.DownlinkTopic, 1, g.onDownlink)
		if token.Wait() && token.Error() != nil {
			g.logger.Error("MQTT subscribe failed", "error", token.Error())
		}
	})

	cli := mqtt.NewClient(opts)
	t := cli.Connect()
	t.Wait()
	if err := t.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", g.config.MqttBroker, err)
	}
	return cli, nil
}

func (g *gateway) onDownlink(_ mqtt.Client, m mqtt.Message) {
	if m.Duplicate() {
		if _, handled := g.seen.Load(m.MessageID()); handled {
			g.logger.Debug("Dropping redelivered message", "id", m.MessageID())
			return
		}
	}
	g.seen.Store(m.MessageID(), time.Now())

	payload := make([]byte, len(m.Payload()))
	copy(payload, m.Payload())
	select {
	case g.downlink <- job{payload: payload}:
	default:
		g.logger.Warn("Downlink queue full, dropping payload", "len", len(payload))
	}
}

// bridge is the single loop that touches the driver: it drains the
// downlink queue into the module and polls the module for uplink bytes.
func (g *gateway) bridge(ctx context.Context, cli mqtt.Client) error {
	ticker := time.NewTicker(recvPoll)
	defer ticker.Stop()

	cleanup := time.NewTicker(dedupTTL)
	defer cleanup.Stop()

	for {
		select {
		case <-ctx.Done():
			g.logger.Info("Shutting down")
			return nil

		case j := <-g.downlink:
			if out := g.drv.SendData(j.payload); !out.OK() {
				j.attempts++
				if j.attempts < maxSendAttempts {
					g.logger.Warn("Data send failed, will retry",
						"len", len(j.payload), "attempt", j.attempts, "status", out.Status.String())
					select {
					case g.downlink <- j:
					default:
						g.logger.Error("Downlink queue full, dropping retry", "len", len(j.payload))
					}
					continue
				}
				g.logger.Error("Data send failed permanently",
					"len", len(j.payload), "status", out.Status.String(), "error", out.Err)
				continue
			}
			g.logger.Debug("Forwarded downlink", "len", len(j.payload))

		case <-ticker.C:
			out := g.drv.RecvData()
			switch {
			case out.NoData:
			case !out.OK():
				g.logger.Error("Data receive failed", "status", out.Status.String(), "error", out.Err)
			default:
				// Outcome.Data aliases the receive buffer; copy before the
				// publish goroutine takes it.
				p := make([]byte, out.Len)
				copy(p, out.Data)
				cli.Publish(g.config.UplinkTopic, 0, false, p)
				g.logger.Debug("Published uplink", "len", out.Len)
			}

		case now := <-cleanup.C:
			g.seen.Range(func(id uint16, t time.Time) bool {
				if now.Sub(t) > dedupTTL {
					g.seen.Delete(id)
				}
				return true
			})
		}
	}
}
