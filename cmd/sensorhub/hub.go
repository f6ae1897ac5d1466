package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"
	"gobot.io/x/gobot/v2/platforms/raspi"

	"github.com/mklimuk/sensorhub/adapter"
	"github.com/mklimuk/sensorhub/cmd/sensorhub/console"
	"github.com/mklimuk/sensorhub/hub"
	"github.com/mklimuk/sensorhub/i2c"
	"github.com/mklimuk/sensorhub/snsctx"
)

const (
	adapterPeriph  = "periph"
	adapterRaspi   = "raspi"
	adapterNanoPi  = "nanopi"
	adapterMCP2221 = "mcp2221"
)

var hubFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "adapter",
		Aliases: []string{"a"},
		Value:   adapterPeriph,
		Usage:   "bus adapter: periph, raspi, nanopi or mcp2221",
		EnvVars: []string{"SENSORHUB_ADAPTER"},
	},
	&cli.IntFlag{
		Name:    "bus",
		Aliases: []string{"b"},
		Value:   1,
		Usage:   "host I2C bus number",
		EnvVars: []string{"SENSORHUB_BUS"},
	},
	&cli.StringFlag{
		Name:    "address",
		Value:   fmt.Sprintf("%#x", hub.DefaultAddress),
		Usage:   "7-bit I2C address of the hub",
		EnvVars: []string{"SENSORHUB_ADDRESS"},
	},
	&cli.IntFlag{
		Name:  "device-index",
		Value: -1,
		Usage: "MCP2221 bridge to use when more than one is connected",
	},
	&cli.Int64Flag{
		Name:    "speed",
		Usage:   "I2C clock in Hz for the periph adapter, 0 keeps the host setting",
		EnvVars: []string{"SENSORHUB_SPEED"},
	},
	&cli.BoolFlag{
		Name:  "verbose",
		Usage: "enable verbose logging",
	},
}

func parseAddress(s string) (byte, error) {
	addr, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if addr > 0x7F {
		return 0, fmt.Errorf("invalid address %q: not a 7-bit address", s)
	}
	return byte(addr), nil
}

// openHub connects the selected adapter and returns the hub with a cleanup
// function releasing everything that was opened.
func openHub(c *cli.Context) (context.Context, *hub.EP0106, func(), error) {
	ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
	addr, err := parseAddress(c.String("address"))
	if err != nil {
		return nil, nil, nil, console.Exit(1, "%s", console.Red(err))
	}
	busNr := c.Int("bus")
	console.Debugf("opening hub %#x on bus %d through %s", addr, busNr, c.String("adapter"))
	switch c.String("adapter") {
	case adapterPeriph:
		h, err := hub.Open(hub.WithBus(strconv.Itoa(busNr)), hub.WithAddress(addr), hub.WithSpeed(c.Int64("speed")))
		if err != nil {
			return nil, nil, nil, console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		return ctx, h, func() {
			closeBus(h)
		}, nil
	case adapterRaspi:
		a := raspi.NewAdaptor()
		if err := a.Connect(); err != nil {
			finalize(a)
			return nil, nil, nil, console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		bus := i2c.NewGobotBus(a, busNr)
		return ctx, hub.New(bus, hub.WithAddress(addr)), func() {
			closeBus(bus)
			finalize(a)
		}, nil
	case adapterNanoPi:
		npi := nanopi.NewNeoAdaptor()
		if err := npi.I2cBusAdaptor.Connect(); err != nil {
			finalize(npi.I2cBusAdaptor)
			return nil, nil, nil, console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		bus := i2c.NewGobotBus(npi, busNr)
		return ctx, hub.New(bus, hub.WithAddress(addr)), func() {
			closeBus(bus)
			finalize(npi.I2cBusAdaptor)
		}, nil
	case adapterMCP2221:
		a := adapter.NewMCP2221(adapter.WithDeviceIndex(c.Int("device-index")))
		if err := a.Init(); err != nil {
			return nil, nil, nil, console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		return ctx, hub.New(a, hub.WithAddress(addr)), func() {}, nil
	default:
		return nil, nil, nil, console.Exit(1, "unknown adapter %q", c.String("adapter"))
	}
}

func closeBus(bus io.Closer) {
	if err := bus.Close(); err != nil {
		console.Errorf("error closing bus: %s", console.Red(err))
	}
}

type finalizer interface {
	Finalize() error
}

func finalize(a finalizer) {
	if err := a.Finalize(); err != nil {
		console.Errorf("error finalizing adapter: %s", console.Red(err))
	}
}
