package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/bartossh/addrgen/address"
	"github.com/bartossh/addrgen/batch"
	"github.com/bartossh/addrgen/configuration"
	"github.com/bartossh/addrgen/display"
	"github.com/bartossh/addrgen/logging"
	"github.com/bartossh/addrgen/logo"
	"github.com/bartossh/addrgen/serializer"
	"github.com/bartossh/addrgen/stdoutwriter"
	"github.com/bartossh/addrgen/telemetry"
)

const usage = `Addrgen creates wallet addresses: a fresh ed25519 keypair, a public id hashed from the public key and a zero balance.
Private keys are printed only with --reveal-private. Nothing is saved to disk.`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		pterm.Error.Println(err.Error())
		cancel()
		os.Exit(1)
	}
}

// newApp builds the cli application printing addresses to stdout and the banner and logs to stderr.
func newApp(stdout, stderr io.Writer) *cli.App {
	var config, format, encoding string
	var revealPrivate, quiet bool

	configurator := func(cCtx *cli.Context) (configuration.Configuration, error) {
		cfg, err := configuration.Read(config)
		if err != nil {
			return cfg, err
		}
		if cCtx.IsSet("format") {
			cfg.Display.Format = format
		}
		if cCtx.IsSet("encoding") {
			cfg.Display.Encoding = encoding
		}
		if cCtx.IsSet("reveal-private") {
			cfg.Display.RevealPrivate = revealPrivate
		}
		return cfg, nil
	}

	return &cli.App{
		Name:      "addrgen",
		Usage:     usage,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Load configuration from `FILE`",
				Destination: &config,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "Print addresses as text, table or json.",
				Destination: &format,
			},
			&cli.StringFlag{
				Name:        "encoding",
				Aliases:     []string{"e"},
				Usage:       "Encode bytes as hex or base58.",
				Destination: &encoding,
			},
			&cli.BoolFlag{
				Name:        "reveal-private",
				Usage:       "Print the private key. Never share the output.",
				Destination: &revealPrivate,
			},
			&cli.BoolFlag{
				Name:        "quiet",
				Aliases:     []string{"q"},
				Usage:       "Do not display the banner.",
				Destination: &quiet,
			},
		},
		Before: func(_ *cli.Context) error {
			if !quiet {
				logo.Display(stderr)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:    "new",
				Aliases: []string{"n"},
				Usage:   "Creates a new address and prints it.",
				Action: func(cCtx *cli.Context) error {
					cfg, err := configurator(cCtx)
					if err != nil {
						return err
					}
					return runNew(cfg, stdout, stderr)
				},
			},
			{
				Name:    "batch",
				Aliases: []string{"b"},
				Usage:   "Creates many independent addresses concurrently and prints them.",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "count",
						Value: 10,
						Usage: "Number of addresses to create.",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent workers, overrides configuration.",
					},
				},
				Action: func(cCtx *cli.Context) error {
					cfg, err := configurator(cCtx)
					if err != nil {
						return err
					}
					if cCtx.IsSet("workers") {
						cfg.Batch.Workers = cCtx.Int("workers")
					}
					return runBatch(cCtx.Context, cfg, stdout, stderr, cCtx.Int("count"))
				},
			},
			{
				Name:    "derive",
				Aliases: []string{"d"},
				Usage:   "Prints public id derived from the given public key.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "public-key",
						Aliases:  []string{"k"},
						Usage:    "Public key encoded with --encoding.",
						Required: true,
					},
				},
				Action: func(cCtx *cli.Context) error {
					cfg, err := configurator(cCtx)
					if err != nil {
						return err
					}
					return runDerive(cfg, stdout, cCtx.String("public-key"))
				},
			},
		},
	}
}

func newLogger(cfg configuration.Configuration, stderr io.Writer) logging.Helper {
	return logging.New(cfg.Logging, func(err error) {
		pterm.Warning.Println(err.Error())
	}, stdoutwriter.Logger{Out: stderr})
}

func runNew(cfg configuration.Configuration, stdout, stderr io.Writer) error {
	log := newLogger(cfg, stderr)
	defer log.Flush()

	g, err := address.NewGenerator(cfg.Generator)
	if err != nil {
		return err
	}
	p, err := display.New(cfg.Display, stdout)
	if err != nil {
		return err
	}

	a, err := g.Create()
	if err != nil {
		log.Fatal(err.Error())
		return err
	}
	defer a.Wipe()

	log.Info(fmt.Sprintf("created address with public id %x", a.PublicID))
	return p.Print(a)
}

func runBatch(ctx context.Context, cfg configuration.Configuration, stdout, stderr io.Writer, count int) error {
	log := newLogger(cfg, stderr)
	defer log.Flush()

	g, err := address.NewGenerator(cfg.Generator)
	if err != nil {
		return err
	}
	p, err := display.New(cfg.Display, stdout)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	m, err := telemetry.NewMetrics(reg)
	if err != nil {
		return err
	}

	tctx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- telemetry.Run(tctx, cfg.Telemetry, reg)
	}()
	defer func() {
		stop()
		if err := <-done; err != nil {
			log.Error(fmt.Sprintf("telemetry server: %s", err))
		}
	}()

	addrs, err := batch.Generate(ctx, cfg.Batch, telemetry.Instrument(g, m), log, count)
	if err != nil {
		return err
	}

	var printErr error
	for i := range addrs {
		if printErr == nil {
			printErr = p.Print(addrs[i])
		}
		addrs[i].Wipe()
	}
	return printErr
}

func runDerive(cfg configuration.Configuration, stdout io.Writer, key string) error {
	g, err := address.NewGenerator(cfg.Generator)
	if err != nil {
		return err
	}
	p, err := display.New(cfg.Display, stdout)
	if err != nil {
		return err
	}
	enc, err := serializer.ParseEncoding(cfg.Display.Encoding)
	if err != nil {
		return err
	}

	pub, err := enc.Decode(key)
	if err != nil {
		return errors.Join(errors.New("cannot decode public key"), err)
	}
	id, err := g.DerivePublicID(pub)
	if err != nil {
		return err
	}
	return p.PrintPublicID(id)
}
