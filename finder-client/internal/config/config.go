package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"

	pkgconfig "github.com/weiawesome/supplyfinder/pkg/config"
)

const (
	DefaultSupplierTarget = "localhost:50051"
	DefaultVendorTarget   = "localhost:50052"
)

// Usage messages printed for malformed command lines.
const (
	UsageSyntax     = "The only correct argument syntax is --target="
	UsageAcceptable = "The only acceptable argument is --target="
)

// UsageError reports a malformed command line. The client prints Message
// and exits successfully.
type UsageError struct {
	Message string
	Err     error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

type Config struct {
	Supplier EndpointConfig
	Vendor   EndpointConfig
	Client   ClientConfig
	Lookup   LookupConfig
	Log      LogConfig
}

type EndpointConfig struct {
	Target string
	Name   string
}

type ClientConfig struct {
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	CallTimeout time.Duration `mapstructure:"call_timeout"`
}

// LookupConfig lists the record ids the client asks the supplier for.
type LookupConfig struct {
	IDs []uint32 `mapstructure:"ids"`
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// Load parses args (without the program name) and merges them over the
// config file, environment and defaults.
func Load(args []string) (*Config, error) {
	fs, err := parseArgs(args)
	if err != nil {
		return nil, err
	}

	v, err := pkgconfig.LoadWithFlags("./config", "config", fs, map[string]string{
		"supplier.target": "target",
	})
	if err != nil {
		return nil, err
	}

	v.SetDefault("supplier.target", DefaultSupplierTarget)
	v.SetDefault("supplier.name", "supplier")
	v.SetDefault("vendor.target", DefaultVendorTarget)
	v.SetDefault("vendor.name", "vendor")
	v.SetDefault("client.dial_timeout", 5*time.Second)
	v.SetDefault("client.call_timeout", 3*time.Second)
	v.SetDefault("lookup.ids", []uint32{1, 2})
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.pretty", true)

	v.BindEnv("supplier.target", "SUPPLIER_TARGET")
	v.BindEnv("vendor.target", "VENDOR_TARGET")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// parseArgs looks only at the first argument, which must be absent or
// --target=<host:port>; anything after it is ignored. An empty target is
// rejected since there is nothing to dial.
func parseArgs(args []string) (*pflag.FlagSet, error) {
	fs := pflag.NewFlagSet("finder-client", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("target", DefaultSupplierTarget, "supplier endpoint host:port")

	if len(args) > 1 {
		args = args[:1]
	}
	if len(args) > 0 && strings.HasPrefix(args[0], "--target") && !strings.HasPrefix(args[0], "--target=") {
		return nil, &UsageError{Message: UsageSyntax}
	}

	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{Message: UsageAcceptable, Err: err}
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{Message: UsageAcceptable}
	}

	if f := fs.Lookup("target"); f.Changed && f.Value.String() == "" {
		return nil, &UsageError{Message: UsageSyntax, Err: errors.New("empty target")}
	}

	return fs, nil
}

// IsUsage reports whether err came from a malformed command line.
func IsUsage(err error) (*UsageError, bool) {
	var ue *UsageError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

func (c *Config) String() string {
	return fmt.Sprintf("supplier=%s vendor=%s", c.Supplier.Target, c.Vendor.Target)
}
