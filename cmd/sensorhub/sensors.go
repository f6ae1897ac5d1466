package main

import (
	"errors"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/sensorhub/cmd/sensorhub/console"
	"github.com/mklimuk/sensorhub/hub"
)

var readCmd = cli.Command{
	Name:    "read",
	Aliases: []string{"rd"},
	Usage:   "read every sensor of the hub",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Value: "text",
			Usage: "output format: text or yaml",
		},
	},
	Action: func(c *cli.Context) error {
		ctx, h, done, err := openHub(c)
		if err != nil {
			return err
		}
		defer done()
		r := h.ReadAll(ctx)
		switch c.String("format") {
		case "yaml":
			enc := yaml.NewEncoder(os.Stdout)
			if err := enc.Encode(r); err != nil {
				return console.Exit(1, "encoding error: %s", console.Red(err))
			}
			return enc.Close()
		case "text":
			printReading(r)
			return nil
		default:
			return console.Exit(1, "unknown format %q", c.String("format"))
		}
	},
}

func printReading(r hub.Reading) {
	printValue(r.ExtTemp, "external temperature: %s °C\n", console.PictoThermometer)
	printValue(r.Brightness, "brightness: %s lux\n", console.PictoBulb)
	printValue(r.OnBoardTemp, "onboard temperature: %s °C\n", console.PictoThermometer)
	printValue(r.OnBoardHumidity, "onboard humidity: %s %%RH\n", console.PictoHumidity)
	if !r.OnBoardUpToDate.OK() {
		console.Warnf("%s", r.OnBoardUpToDate.Err)
	}
	printValue(r.BMP280Temp, "barometer temperature: %s °C\n", console.PictoThermometer)
	printValue(r.BMP280Pressure, "barometer pressure: %s Pa\n", console.PictoGauge)
	printPresence(r.HumanDetected.Value, r.HumanDetected.Err)
}

func printValue[T any](v hub.Value[T], format string, picto string) {
	if !v.OK() {
		console.Errorf("%s", console.Red(v.Err))
		return
	}
	console.PInfof(picto, format, console.White(v.Value))
}

func printPresence(detected bool, err error) {
	if err != nil {
		console.Errorf("%s", console.Red(err))
		return
	}
	if detected {
		console.PInfof(console.PictoWoman, "live body detected within 5 seconds: %s\n", console.Yellow(detected))
		return
	}
	console.PInfof(console.PictoGhost, "no humans detected: %s\n", console.Green(detected))
}

var temperatureCmd = cli.Command{
	Name:    "temperature",
	Aliases: []string{"temp"},
	Usage:   "read one of the temperature sensors",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "sensor",
			Aliases: []string{"s"},
			Value:   "external",
			Usage:   "external, onboard or bmp280",
		},
	},
	Action: func(c *cli.Context) error {
		ctx, h, done, err := openHub(c)
		if err != nil {
			return err
		}
		defer done()
		var temp int8
		switch c.String("sensor") {
		case "external", "ext":
			temp, err = h.ExtTemp(ctx)
		case "onboard", "board":
			temp, err = h.OnBoardTemp(ctx)
		case "bmp280", "baro":
			temp, err = h.BMP280Temp(ctx)
		default:
			return console.Exit(1, "unknown temperature sensor %q", c.String("sensor"))
		}
		if err != nil {
			return console.Exit(1, "error getting temperature read: %s", console.Red(err))
		}
		console.PInfof(console.PictoThermometer, "%s °C\n", console.White(temp))
		return nil
	},
}

var lightCmd = cli.Command{
	Name:  "light",
	Usage: "read the light sensor",
	Action: func(c *cli.Context) error {
		ctx, h, done, err := openHub(c)
		if err != nil {
			return err
		}
		defer done()
		lux, err := h.Brightness(ctx)
		if err != nil {
			return console.Exit(1, "error getting light sensor read: %s", console.Red(err))
		}
		console.PInfof(console.PictoBulb, "%s lux\n", console.White(lux))
		return nil
	},
}

var humidityCmd = cli.Command{
	Name:    "humidity",
	Aliases: []string{"hum"},
	Usage:   "read the onboard humidity sensor",
	Action: func(c *cli.Context) error {
		ctx, h, done, err := openHub(c)
		if err != nil {
			return err
		}
		defer done()
		hum, err := h.OnBoardHumidity(ctx)
		if err != nil {
			return console.Exit(1, "error getting humidity read: %s", console.Red(err))
		}
		console.PInfof(console.PictoHumidity, "%s %%RH\n", console.White(hum))
		return nil
	},
}

var pressureCmd = cli.Command{
	Name:  "pressure",
	Usage: "read the barometer",
	Action: func(c *cli.Context) error {
		ctx, h, done, err := openHub(c)
		if err != nil {
			return err
		}
		defer done()
		pa, err := h.BMP280Pressure(ctx)
		if err != nil {
			return console.Exit(1, "error getting pressure read: %s", console.Red(err))
		}
		console.PInfof(console.PictoGauge, "%s Pa\n", console.White(pa))
		return nil
	},
}

var presenceCmd = cli.Command{
	Name:    "presence",
	Aliases: []string{"pir"},
	Usage:   "check the human presence sensor",
	Action: func(c *cli.Context) error {
		ctx, h, done, err := openHub(c)
		if err != nil {
			return err
		}
		defer done()
		detected, err := h.HumanDetected(ctx)
		if err != nil {
			return console.Exit(1, "error checking presence: %s", console.Red(err))
		}
		printPresence(detected, nil)
		return nil
	},
}

var statusCmd = cli.Command{
	Name:  "status",
	Usage: "check whether the onboard sensor data is up to date",
	Action: func(c *cli.Context) error {
		ctx, h, done, err := openHub(c)
		if err != nil {
			return err
		}
		defer done()
		err = h.OnBoardSensorStatus(ctx)
		if errors.Is(err, hub.ErrNotUpToDate) {
			return console.Exit(2, "%s", console.Yellow(err))
		}
		if err != nil {
			return console.Exit(1, "error reading onboard sensor status: %s", console.Red(err))
		}
		console.Info("onboard sensor data is up to date")
		return nil
	},
}
