package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"litecoin-rpc/client"
	"litecoin-rpc/log"
	"litecoin-rpc/middleware"
)

// appConfig is everything ltc-cli reads from YAML and LTC_RPC_* variables.
type appConfig struct {
	RPC client.Config `yaml:"rpc"`
	Log log.Config    `yaml:"log"`
}

// loadConfig merges, lowest precedence first: defaults, the YAML file,
// the environment (after the .env file) and explicitly set flags.
func loadConfig(ctx *cli.Context) (appConfig, error) {
	var cfg appConfig

	envFile := ctx.GlobalString("envfile")
	if err := godotenv.Load(envFile); err != nil {
		// Only a file the user asked for has to exist.
		if ctx.GlobalIsSet("envfile") {
			return cfg, errors.Wrapf(err, "load env file %s", envFile)
		}
	}

	if path := ctx.GlobalString("config"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "read config %s", path)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, errors.Wrap(err, "read environment")
	}

	if ctx.GlobalIsSet("scheme") {
		cfg.RPC.Scheme = ctx.GlobalString("scheme")
	}
	if ctx.GlobalIsSet("rpcuser") {
		cfg.RPC.Username = ctx.GlobalString("rpcuser")
	}
	if ctx.GlobalIsSet("rpcpassword") {
		cfg.RPC.Password = ctx.GlobalString("rpcpassword")
	}
	if ctx.GlobalIsSet("host") {
		cfg.RPC.Host = ctx.GlobalString("host")
	}
	if ctx.GlobalIsSet("port") {
		cfg.RPC.Port = ctx.GlobalInt("port")
	}
	if ctx.GlobalIsSet("trustanchor") {
		cfg.RPC.TrustAnchorPath = ctx.GlobalString("trustanchor")
	}
	if ctx.GlobalIsSet("insecure") {
		cfg.RPC.InsecureSkipVerify = ctx.GlobalBool("insecure")
	}
	if ctx.GlobalIsSet("debug") {
		cfg.RPC.DebugLevel = ctx.GlobalInt("debug")
	}
	if ctx.GlobalIsSet("loglevel") {
		cfg.Log.Level = log.Level(ctx.GlobalString("loglevel"))
	}
	if ctx.GlobalIsSet("logformat") {
		cfg.Log.Format = ctx.GlobalString("logformat")
	}
	return cfg, nil
}

// getClient builds a client from the merged configuration. The returned
// cleanup flushes the logger.
func getClient(ctx *cli.Context) (*client.Client, func(), error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	lg := log.NewZapLogger(cfg.Log).WithName("ltc-cli")
	cleanUp := func() {
		if s, ok := lg.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
	}

	c, err := client.New(cfg.RPC,
		client.WithLogger(lg),
		client.WithMiddleware(middleware.TimeOutMiddleware(ctx.GlobalDuration("timeout"))),
	)
	if err != nil {
		cleanUp()
		return nil, nil, err
	}
	return c, cleanUp, nil
}

// getContext returns a context cancelled on interrupt.
func getContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
