package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"stratis/internal/actions"
	"stratis/internal/bus"
	"stratis/internal/config"
	"stratis/internal/devices"
	"stratis/internal/errcodes"
	"stratis/internal/logging"
)

// dialFunc opens a transport for cfg. The returned close function is always
// non-nil when err is nil.
type dialFunc func(ctx context.Context, cfg *config.Config) (bus.Transport, func() error, error)

type globalFlags struct {
	config      string
	logLevel    string
	output      string
	noPreflight bool
}

type commandContext struct {
	flags globalFlags
	dial  dialFunc

	// started is set once a handler begins; errors before that point are
	// usage errors.
	started bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

type contextOption func(*commandContext)

// withTransport makes every command use transport instead of dialing.
func withTransport(transport bus.Transport) contextOption {
	return func(c *commandContext) {
		c.dial = func(context.Context, *config.Config) (bus.Transport, func() error, error) {
			return transport, func() error { return nil }, nil
		}
	}
}

func newCommandContext(opts ...contextOption) *commandContext {
	c := &commandContext{dial: dialBus}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func dialBus(ctx context.Context, cfg *config.Config) (bus.Transport, func() error, error) {
	transport, err := bus.Dial(ctx, bus.Options{
		Address: cfg.Bus.Address,
		Service: cfg.Bus.Service,
		Timeout: cfg.Timeout(),
	})
	if err != nil {
		return nil, nil, err
	}
	return transport, transport.Close, nil
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if format := strings.ToLower(strings.TrimSpace(c.flags.output)); format != "" {
			if err := config.ValidateOutputFormat(format); err != nil {
				c.configErr = newUsageError(fmt.Errorf("--output: %w", err))
				return
			}
			cfg.Output.Format = format
		}
		if c.flags.noPreflight {
			cfg.Devices.Preflight = false
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	if cfg == nil {
		def := config.Default()
		return &def
	}
	return cfg
}

// colorize decides whether w gets ANSI color. Before a config is loaded the
// mode is auto.
func (c *commandContext) colorize(w io.Writer) bool {
	mode := config.ColorAuto
	if c.config != nil {
		mode = c.config.Output.Color
	}
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return shouldColorize(w)
}

func (c *commandContext) newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	logger, err := logging.NewFromConfig(c.configValue(), cmd.ErrOrStderr(), c.flags.logLevel)
	if err != nil {
		return nil, newUsageError(err)
	}
	return logger, nil
}

// invocationContext tags ctx with the command path and a fresh correlation id.
func invocationContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithCommand(ctx, commandKey(cmd))
	return logging.WithCorrelationID(ctx, uuid.NewString())
}

// withClient dials the bus, builds an action client, and runs fn.
func (c *commandContext) withClient(ctx context.Context, cmd *cobra.Command, fn func(*actions.Client) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.newLogger(cmd)
	if err != nil {
		return err
	}
	log := logging.WithContext(ctx, logger)

	transport, closeFn, err := c.dial(ctx, cfg)
	if err != nil {
		logging.WarnWithHint(log, "bus connection failed", logging.Error(err), logging.String("address", cfg.Bus.Address))
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil {
			log.Debug("bus close failed", logging.Error(cerr))
		}
	}()

	var checker devices.Checker = devices.Skip{}
	if cfg.Devices.Preflight {
		checker = devices.NewPreflight(nil, logger)
	}
	client := actions.New(bus.Logged(transport, logger),
		actions.WithLogger(logger),
		actions.WithDeviceChecker(checker),
	)

	err = fn(client)
	switch {
	case err == nil:
	case bus.IsTransport(err):
		logging.WarnWithHint(log, "bus call failed", logging.Error(err))
	default:
		if e, ok := errcodes.AsError(err); ok {
			log.Debug("daemon reported failure",
				logging.String(logging.FieldErrorCode, e.Name),
				logging.Int("return_code", e.Code),
				logging.String("kind", e.Kind.String()),
			)
		}
	}
	return err
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func shouldSkip(cmd *cobra.Command, annotation string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations[annotation] == "true" {
			return true
		}
	}
	return false
}
