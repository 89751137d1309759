// Command krakenbridge invokes one Kraken operation by name and prints the
// result as JSON on stdout. Logs go to stderr.
//
//	krakenbridge -list
//	krakenbridge -op ticker -args '{"pairs":["XBTUSD"]}'
//	KRAKEN_API_KEY=... KRAKEN_API_SECRET=... krakenbridge -op account_balance
//
// With -mcp it instead serves every operation as a Model Context Protocol
// tool over stdin/stdout until the client disconnects.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"krakenbridge/internal/mcpserver"
	"krakenbridge/pkg/catalog"
	"krakenbridge/pkg/core"
	"krakenbridge/pkg/exchange/kraken"
)

const (
	exitOK    = 0
	exitFault = 1
	exitUsage = 2
)

// argsAPI keeps numeric arguments as their literal text so large integers
// and decimals reach the request decoder unchanged.
var argsAPI = sonic.Config{UseNumber: true}.Froze()

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

// serveMCP runs the tool server. Replaced in tests.
var serveMCP = func(ctx context.Context, reg *catalog.Registry, logger zerolog.Logger) error {
	return mcpserver.Serve(ctx, reg, &mcp.StdioTransport{}, logger)
}

type options struct {
	mcp      bool
	list     bool
	op       string
	args     string
	timeout  time.Duration
	baseURL  string
	logLevel string
	tier     string
	pretty   bool
}

func parseFlags(argv []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("krakenbridge", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.BoolVar(&o.mcp, "mcp", false, "serve all operations as MCP tools over stdio")
	fs.BoolVar(&o.list, "list", false, "print the operation catalog and exit")
	fs.StringVar(&o.op, "op", "", "operation to invoke")
	fs.StringVar(&o.args, "args", "{}", "operation arguments as a JSON object")
	fs.DurationVar(&o.timeout, "timeout", 15*time.Second, "HTTP request timeout")
	fs.StringVar(&o.baseURL, "base-url", kraken.ProductionURL, "REST API base URL")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	fs.StringVar(&o.tier, "tier", "starter", "verification tier sizing the private call rate: starter, intermediate, pro")
	fs.BoolVar(&o.pretty, "pretty", false, "indent JSON output")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	if !o.mcp && !o.list && o.op == "" {
		return nil, errors.New("one of -mcp, -list or -op is required")
	}
	return o, nil
}

func run(ctx context.Context, argv []string, getenv func(string) string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(argv, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "krakenbridge: %v\n", err)
		}
		return exitUsage
	}

	logger := core.NewLogger(opts.logLevel, zerolog.ConsoleWriter{Out: stderr, NoColor: true})

	config := core.DefaultConfig().
		WithBaseURL(opts.baseURL).
		WithTimeout(opts.timeout).
		WithTier(opts.tier)
	config.LogLevel = opts.logLevel
	if key, secret := getenv("KRAKEN_API_KEY"), getenv("KRAKEN_API_SECRET"); key != "" || secret != "" {
		config.WithCredentials(&core.Credentials{APIKey: key, Secret: secret})
	}

	ex, err := kraken.New(config, kraken.WithLogger(logger))
	if err != nil {
		return fail(stdout, logger, opts.pretty, err)
	}
	defer ex.Close()

	registry := catalog.New(ex)
	if opts.mcp {
		if err := serveMCP(ctx, registry, logger); err != nil {
			logger.Error().Err(err).Msg("mcp server stopped")
			return exitFault
		}
		return exitOK
	}
	if opts.list {
		return emit(stdout, logger, opts.pretty, registry.Operations())
	}

	var args map[string]any
	if err := argsAPI.UnmarshalFromString(opts.args, &args); err != nil {
		return fail(stdout, logger, opts.pretty,
			core.NewValidationError(core.ErrCodeInvalidParams, "", "-args must be a JSON object").WithCause(err))
	}

	logger.Info().Str("op", opts.op).Msg("invoke")
	result, err := registry.Invoke(ctx, opts.op, args)
	if err != nil {
		return fail(stdout, logger, opts.pretty, err)
	}
	return emit(stdout, logger, opts.pretty, result)
}

func emit(w io.Writer, logger zerolog.Logger, pretty bool, v any) int {
	if err := write(w, pretty, v); err != nil {
		logger.Error().Err(err).Msg("write output")
		return exitFault
	}
	return exitOK
}

// fail reports err as {"error": ...} on stdout and picks the exit code:
// caller mistakes exit 2, everything else exits 1.
func fail(w io.Writer, logger zerolog.Logger, pretty bool, err error) int {
	logger.Error().Err(err).Msg("operation failed")

	var payload any = map[string]string{"message": err.Error()}
	var ce *core.Error
	if errors.As(err, &ce) {
		payload = ce
	}
	if werr := write(w, pretty, map[string]any{"error": payload}); werr != nil {
		logger.Error().Err(werr).Msg("write output")
	}
	return exitCode(err)
}

func exitCode(err error) int {
	if core.IsConfigurationError(err) || core.IsValidationError(err) {
		return exitUsage
	}
	return exitFault
}

func write(w io.Writer, pretty bool, v any) error {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = sonic.ConfigStd.MarshalIndent(v, "", "  ")
	} else {
		out, err = sonic.ConfigStd.Marshal(v)
	}
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
