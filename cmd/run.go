package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hashicorp/go-readbody"
	"github.com/hashicorp/go-readbody/telemetry"
)

// CLI are the cli parameters for go-readbody binary
type CLI struct {
	Input     []string         `arg:"" name:"input" default:"-" help:"Path to input. (\"-\" for STDIN)"`
	Charset   string           `short:"c" optional:"" help:"Decode the payload to text with the given charset."`
	Encoding  string           `short:"e" default:"identity" help:"Content coding of the input (identity, gzip, deflate, br, zstd, auto)."`
	Length    int64            `short:"l" default:"-1" help:"Declared content length, checked on identity input. (disable check: -1)"`
	Limit     string           `short:"L" default:"1mb" help:"Maximum size after decompression, e.g. 512kb. (disable check: -1)"`
	MaxInput  string           `optional:"" default:"-1" help:"Maximum size of the compressed input. (disable check: -1)"`
	Metrics   bool             `short:"M" optional:"" default:"false" help:"Print read telemetry to log after each input."`
	NoInflate bool             `help:"Refuse compressed input."`
	Verbose   bool             `short:"v" optional:"" help:"Verbose logging."`
	Version   kong.VersionFlag `short:"V" optional:"" help:"Print release version information."`
}

// Run the entrypoint into go-readbody as a cli tool
func Run(version, commit, date string) {
	ctx := context.Background()
	var cli CLI
	kong.Parse(&cli,
		kong.Description("A bounded request body reader"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("%s (%s), commit %s, built at %s", filepath.Base(os.Args[0]), version, commit, date),
		},
	)

	// Check for verbose output
	logLevel := slog.LevelError
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// setup telemetry hook
	telemetryToLog := func(ctx context.Context, td *telemetry.Data) {
		if cli.Metrics {
			logger.Info("read finished", "telemetry", td)
		}
	}

	limit, ok := readbody.ParseSize(cli.Limit)
	if !ok {
		logger.Error("invalid limit", "limit", cli.Limit)
		os.Exit(-1)
	}
	maxInput, ok := readbody.ParseSize(cli.MaxInput)
	if !ok {
		logger.Error("invalid max input size", "max-input", cli.MaxInput)
		os.Exit(-1)
	}

	// read all inputs in parallel, buffer the payloads and print them in
	// input order
	payloads := make([][]byte, len(cli.Input))
	g, gctx := errgroup.WithContext(ctx)
	for i, input := range cli.Input {
		i, input := i, input
		g.Go(func() error {
			payload, err := readInput(gctx, logger, telemetryToLog, &cli, input, limit, maxInput)
			if err != nil {
				return errors.Wrapf(err, "cannot read %s", input)
			}
			payloads[i] = payload
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("error during read", "error", err, "kind", readbody.Kind(errors.Cause(err)))
		os.Exit(-1)
	}

	for _, payload := range payloads {
		if _, err := os.Stdout.Write(payload); err != nil {
			logger.Error("cannot write payload", "error", err)
			os.Exit(-1)
		}
	}
}

// readInput reads a single input with the cli options applied.
func readInput(ctx context.Context, logger *slog.Logger, hook telemetry.TelemetryHook, cli *CLI, input string, limit, maxInput int64) ([]byte, error) {

	// open input
	var src io.Reader
	if input == "-" {
		src = bufio.NewReader(os.Stdin)
	} else {
		f, err := os.Open(input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = bufio.NewReader(f)
	}

	// detect the content coding from the first bytes if requested
	encoding := cli.Encoding
	if encoding == "auto" {
		br := src.(*bufio.Reader)
		header, err := br.Peek(10)
		if err != nil && err != io.EOF {
			return nil, err
		}
		encoding = readbody.DetectCoding(header)
		logger.Debug("detected content coding", "input", input, "coding", encoding)
	}

	opts := []readbody.ConfigOption{
		readbody.WithBrotli(),
		readbody.WithZstd(),
		readbody.WithSnappy(),
		readbody.WithLZ4(),
		readbody.WithEncoding(encoding),
		readbody.WithExpectedLength(cli.Length),
		readbody.WithInflate(!cli.NoInflate),
		readbody.WithLimit(limit),
		readbody.WithLogger(logger),
		readbody.WithMaxInputSize(maxInput),
		readbody.WithTelemetryHook(hook),
	}
	if cli.Charset != "" {
		opts = append(opts, readbody.WithCharset(cli.Charset))
	}

	res, err := readbody.Read(ctx, src, opts...)
	if err != nil {
		return nil, err
	}
	return res.Payload(), nil
}
