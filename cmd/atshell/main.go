// Command atshell is an interactive AT command tester for a W55RP20-S2E
// module attached over a host serial port. It drops the module into
// command mode, then reads commands from stdin and prints the parsed
// responses.
//
// Input forms:
//
//	VR              query firmware version (any two-letter code)
//	LI192.168.11.2  set local IP (code followed by parameter)
//	send <text>     transmit raw data (module must be out of command mode)
//	recv            poll the data channel once
//	+++             re-enter command mode
//	help / ?        print the command reference
//	exit            leave command mode and quit
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/phsym/console-slog"

	"github.com/wiznet-go/s2e"
	"github.com/wiznet-go/s2e/uart"
)

func main() {
	serialPort := flag.String("serial-port", "/dev/ttyACM0", "Serial port the module is attached to")
	baudRate := flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	level := slog.LevelInfo
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{Level: level}))

	if err := run(*serialPort, *baudRate, logger); err != nil {
		logger.Error("atshell failed", "error", err)
		os.Exit(1)
	}
}

func run(portName string, baud int, logger *slog.Logger) error {
	port, err := uart.Open(portName, baud)
	if err != nil {
		return fmt.Errorf("open %s: %w", portName, err)
	}
	defer port.Close()

	link := uart.New(port, uart.Config{})
	drv, err := s2e.New(link, s2e.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Info("entering command mode", "port", portName, "baud", baud)
	if err := drv.EnterCommandMode(); err != nil {
		return fmt.Errorf("enter command mode: %w", err)
	}

	fmt.Println("W55RP20-S2E AT shell. Type HELP for commands, EXIT to quit.")

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return in.Err()
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit"):
			if err := drv.ExitCommandMode(); err != nil {
				logger.Warn("exit command mode failed", "error", err)
			}
			return nil

		case line == "+++":
			if err := drv.EnterCommandMode(); err != nil {
				logger.Warn("enter command mode failed", "error", err)
				continue
			}
			fmt.Println("command mode")

		case strings.HasPrefix(strings.ToLower(line), "send "):
			report(drv.SendData([]byte(line[len("send "):])))

		case strings.EqualFold(line, "recv"):
			report(drv.RecvData())

		default:
			code, param := splitCommand(line)
			report(drv.SendCommand(code, param))
		}
	}
}

// splitCommand breaks "LI192.168.11.2" into code "LI" and the rest as the
// parameter. Anything shorter than a code is passed through as-is so the
// driver can report it as a bad command.
func splitCommand(line string) (code, param string) {
	if len(line) <= 2 {
		return line, ""
	}
	return line[:2], line[2:]
}

func report(out s2e.Outcome) {
	switch {
	case out.Kind == s2e.KindHelp:
		// Help already printed itself.
	case !out.OK() && out.NoData:
		fmt.Println("(no data)")
	case !out.OK():
		fmt.Printf("%s failed: %s", out.Kind, out.Status)
		if out.Err != nil {
			fmt.Printf(" (%v)", out.Err)
		}
		fmt.Println()
	case out.Kind == s2e.KindGet:
		fmt.Printf("%s  (raw %q)\n", out.Value, out.Raw)
	case out.Kind == s2e.KindDataRx:
		fmt.Printf("%d bytes: %q\n", out.Len, out.Data)
	case out.Kind == s2e.KindDataTx:
		fmt.Printf("sent %d bytes\n", out.Len)
	default:
		fmt.Println("ok")
	}
}
