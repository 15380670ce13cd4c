package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"

	"litecoin-rpc/client"
)

const (
	defaultEnvFile = ".env"
	defaultTimeout = 30 * time.Second
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[ltc-cli] %v\n", err)
	os.Exit(1)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "ltc-cli"
	app.Version = "0.1.0"
	app.Usage = "control plane for a litecoin daemon over JSON-RPC"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "path to a YAML config file",
		},
		cli.StringFlag{
			Name:  "envfile",
			Value: defaultEnvFile,
			Usage: "path to a .env file loaded before reading LTC_RPC_* variables",
		},
		cli.StringFlag{
			Name:  "scheme",
			Value: "http",
			Usage: "http or https",
		},
		cli.StringFlag{
			Name:  "rpcuser",
			Usage: "rpc username",
		},
		cli.StringFlag{
			Name:  "rpcpassword",
			Usage: "rpc password",
		},
		cli.StringFlag{
			Name:  "host",
			Value: client.DefaultHost,
			Usage: "host of the daemon",
		},
		cli.IntFlag{
			Name:  "port",
			Value: client.DefaultPort,
			Usage: "rpc port of the daemon",
		},
		cli.StringFlag{
			Name:  "trustanchor",
			Usage: "PEM file the daemon's certificate must chain to",
		},
		cli.BoolFlag{
			Name:  "insecure",
			Usage: "skip TLS verification when no trust anchor is given",
		},
		cli.IntFlag{
			Name:  "debug",
			Usage: "transport trace level: 0 off, 1 responses, 2 requests and responses",
		},
		cli.StringFlag{
			Name:  "loglevel",
			Value: "info",
			Usage: "debug, info, warn or error",
		},
		cli.StringFlag{
			Name:  "logformat",
			Value: "console",
			Usage: "console, logfmt or json",
		},
		cli.DurationFlag{
			Name:  "timeout",
			Value: defaultTimeout,
			Usage: "deadline for each call",
		},
	}
	app.Commands = []cli.Command{
		callCommand,
		canConnectCommand,
		getInfoCommand,
		getBlockCountCommand,
		getBalanceCommand,
		getNewAddressCommand,
		validateAddressCommand,
		sendToAddressCommand,
		getTransactionCommand,
		listTransactionsCommand,
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}
