// internal/cli/root.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/javajoker/stylehub/internal/config"
	"github.com/javajoker/stylehub/internal/i18n"
	"github.com/javajoker/stylehub/internal/storefront"
	"github.com/javajoker/stylehub/internal/utils"
)

// app owns the client state for one command invocation.
type app struct {
	cfg     *config.ClientConfig
	out     io.Writer
	storage storefront.Storage
	cart    *storefront.CartStore
	catalog *storefront.CatalogClient
	view    *storefront.View
}

func (a *app) init() error {
	if a.cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	if a.storage == nil {
		storage, err := storefront.NewFileStorage(a.cfg.DataDir)
		if err != nil {
			return err
		}
		a.storage = storage
	}
	a.cart = storefront.NewCartStore(a.storage)
	a.catalog = storefront.NewCatalogClient(a.cfg.APIBaseURL, a.cfg.Timeout)
	a.view = storefront.NewView(a.out)

	logrus.WithFields(logrus.Fields{
		"api":      a.cfg.APIBaseURL,
		"data_dir": a.cfg.DataDir,
	}).Debug("Storefront client ready")
	return nil
}

// NewRootCommand builds the storefront command tree. A nil storage uses
// files under the configured data directory.
func NewRootCommand(cfg *config.ClientConfig, storage storefront.Storage, out io.Writer) *cobra.Command {
	a := &app{cfg: cfg, out: out, storage: storage}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the StyleHub catalog and place orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.APIBaseURL, "api-url", cfg.APIBaseURL, "StyleHub API base URL")
	flags.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding the saved cart and last order")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "verbose logging")

	root.AddCommand(
		a.productsCommand(),
		a.productCommand(),
		a.cartCommand(),
		a.checkoutCommand(),
		a.lastOrderCommand(),
	)
	return root
}

// Execute runs the storefront client and returns the process exit code.
func Execute() int {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	cfg := config.LoadClient()
	if err := NewRootCommand(cfg, nil, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		return 1
	}
	return 0
}

// describe turns classified errors into messages for the shopper.
func describe(err error) string {
	var verr *utils.ValidationError
	var perr *utils.PersistenceError
	switch {
	case errors.Is(err, storefront.ErrCartEmpty):
		return i18n.T("en", i18n.KeyCartEmpty)
	case errors.Is(err, utils.ErrNotFound):
		return "not found"
	case errors.As(err, &verr):
		msg := verr.Message
		for _, f := range verr.Fields {
			msg += "\n  " + f.Field + ": " + f.Message
		}
		return msg
	case errors.As(err, &perr):
		return fmt.Sprintf("could not save %s: %v", perr.Key, perr.Err)
	case utils.IsBackend(err):
		return fmt.Sprintf("%v (the StyleHub API may be unavailable, try again)", err)
	default:
		return err.Error()
	}
}

func requestTimeout(cfg *config.ClientConfig) time.Duration {
	if cfg.Timeout <= 0 {
		return 10 * time.Second
	}
	return cfg.Timeout
}
