package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/f3rmion/elshare/session"
)

// Config holds global CLI configuration. Values come from flags, then
// ELSHARE_* environment variables, then the config file, then defaults.
type Config struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// Curve names the group (see SupportedCurves)
	Curve string

	// Base is the chunk base for share encryption
	Base uint64

	// OutputFormat controls output formatting (text, json)
	OutputFormat string

	// Verbose enables debug logging on stderr
	Verbose bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Curve:        "bls12-381",
		Base:         session.DefaultBase,
		OutputFormat: "text",
	}
}

// bindFlags registers the persistent flags that override configuration.
func (c *Config) bindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", "",
		"config file (default is $HOME/.elshare.yaml)")
	fs.StringVar(&c.Curve, "curve", c.Curve,
		"group to use (bls12-381, babyjubjub, secp256k1, ed25519)")
	fs.Uint64Var(&c.Base, "base", c.Base,
		"chunk base for share encryption")
	fs.StringVarP(&c.OutputFormat, "output", "o", c.OutputFormat,
		"output format (text, json)")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose,
		"verbose output")
}

// Load merges the config file and environment into c. Flags set on the
// command line win over both.
func (c *Config) Load(fs *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix("ELSHARE")
	v.AutomaticEnv()

	defaults := NewConfig()
	v.SetDefault("curve", defaults.Curve)
	v.SetDefault("base", defaults.Base)
	v.SetDefault("output", defaults.OutputFormat)
	v.SetDefault("verbose", defaults.Verbose)

	for _, key := range []string{"curve", "base", "output", "verbose"} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}

	if c.ConfigFile != "" {
		v.SetConfigFile(c.ConfigFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".elshare")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.ConfigFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	c.Curve = v.GetString("curve")
	c.Base = v.GetUint64("base")
	c.OutputFormat = v.GetString("output")
	c.Verbose = v.GetBool("verbose")

	if c.Base < 2 {
		return fmt.Errorf("base must be at least 2, got %d", c.Base)
	}
	switch OutputFormat(c.OutputFormat) {
	case OutputFormatText, OutputFormatJSON:
	default:
		return fmt.Errorf("unknown output format: %s", c.OutputFormat)
	}
	if _, err := LookupCurve(c.Curve); err != nil {
		return err
	}
	return nil
}

// Logger returns a text logger on w at debug level when Verbose is set
// and warn level otherwise.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
