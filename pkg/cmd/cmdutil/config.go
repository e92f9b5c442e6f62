package cmdutil

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/config"
)

// LoadConfig reads the config file named by --config, or the defaults, and applies the
// directory flags and ESPLOT_* environment variables on top.
func LoadConfig() (*config.Config, error) {
	c := config.Default()
	if configFile := viper.GetString("config"); configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	if viper.IsSet("input-dir") {
		c.InputDir = viper.GetString("input-dir")
	}
	if viper.IsSet("output-dir") {
		c.OutputDir = viper.GetString("output-dir")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SignalContext is canceled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
