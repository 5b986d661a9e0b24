// Command bluetoe-peripheral runs a GATT server and Link Layer advertiser
// against a simulated radio, driven by a fixture file of recv/timeout
// commands instead of real RF hardware.
package main

import (
	"net"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/bluetoe-go/bluetoe/linklayer"
	"github.com/bluetoe-go/bluetoe/radio"
)

func main() {
	app := cli.NewApp()
	app.Name = "bluetoe-peripheral"
	app.Usage = "run a simulated BLE peripheral against a schema and a fixture"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "schema",
			Usage: "path to a JSON file describing the server's services and characteristics",
		},
		cli.StringFlag{
			Name:  "name",
			Usage: "device name, overrides the schema's name if both are set",
		},
		cli.StringFlag{
			Name:  "address",
			Value: "c0:ff:ee:c0:ff:ee",
			Usage: "device address (random static)",
		},
		cli.StringFlag{
			Name:  "fixture",
			Usage: "path to a recv/timeout command fixture; defaults to stdin",
		},
		cli.UintFlag{
			Name:  "advertising-interval-ms",
			Value: 100,
			Usage: "base advertising interval in milliseconds",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("bluetoe-peripheral exited with an error")
	}
}

func run(c *cli.Context) error {
	if c.Bool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg := schemaConfig{}
	if path := c.String("schema"); path != "" {
		loaded, err := loadSchema(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if name := c.String("name"); name != "" {
		cfg.Name = name
	}

	srv, err := buildServer(cfg)
	if err != nil {
		return err
	}

	hw, err := net.ParseMAC(c.String("address"))
	if err != nil {
		return err
	}
	addr := linklayer.NewAddress(hw, linklayer.AddressRandomStatic)

	r := radio.NewSimulatedRadio()
	ll := linklayer.New(r, srv,
		linklayer.WithAddress(addr),
		linklayer.WithAdvertisingInterval(linklayer.Msec(uint32(c.Uint("advertising-interval-ms")))),
	)
	r.SetCallbacks(ll)

	ll.Start()
	logrus.WithFields(logrus.Fields{
		"address": addr.String(),
		"name":    srv.Name(),
	}).Info("advertising")

	if path := c.String("fixture"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r.RunFrom(f)
		return nil
	}

	r.Run()
	return nil
}
