package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/txancestry/infrastructure/config"
	"github.com/kaspanet/txancestry/infrastructure/logger"
	"github.com/kaspanet/txancestry/infrastructure/network/esplora"
	"github.com/kaspanet/txancestry/infrastructure/os/signal"
	"github.com/kaspanet/txancestry/util/panics"
	"github.com/kaspanet/txancestry/util/profiling"
	"github.com/kaspanet/txancestry/version"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const appName = "txancestry"

// StartApp parses the command line, analyses the requested block and prints
// the report to stdout. Errors are printed to stderr before they are
// returned.
func StartApp() error {
	defer panics.HandlePanic(log, nil)
	interrupt := signal.InterruptListener()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			return nil
		}
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, config.Usage())
		return err
	}
	if cfg.ShowVersion {
		fmt.Println(appName, "version", version.Version())
		return nil
	}

	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting the log level: %s\n", err)
		return err
	}
	err = initLog(logger.BackendLog, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing the logger: %s\n", err)
		return err
	}
	defer logger.BackendLog.Close()

	log.Infof("Version %s", version.Version())

	// Enable http profiling server if requested.
	if cfg.Profile != "" {
		_, err := profiling.Start(cfg.Profile, log)
		if err != nil {
			log.Errorf("%+v", err)
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return err
		}
	}
	log.Infof("Analysing block %s using %s (%s)", cfg.Block, cfg.EsploraURL, cfg.NetParams().Name)

	ctx, cancel := signal.WithInterrupt(context.Background(), interrupt)
	defer cancel()

	err = run(ctx, cfg, os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
	if err != nil {
		log.Errorf("%+v", err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config, out io.Writer, aligned bool) error {
	esploraConfig := cfg.EsploraConfig()
	client, err := esplora.NewClient(esploraConfig)
	if err != nil {
		return err
	}
	source, err := esplora.NewSource(client, esploraConfig)
	if err != nil {
		return err
	}

	report, err := NewAnalyzer(source).Analyze(ctx, cfg.Block, cfg.Limit)
	if err != nil {
		return err
	}
	log.Infof("Ranked %d of %d transactions in block %s",
		len(report.Sets), report.TransactionCount, report.BlockID)

	return WriteReport(out, report, aligned)
}
