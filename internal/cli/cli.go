// Package cli - консольный клиент listingctl: поиск по выдаче с теми же
// фильтрами, что и у сайта, и локальное избранное в файлах.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"listing-service/internal/adapters/favorites_store"
	"listing-service/internal/adapters/filestore"
	logger_adapter "listing-service/internal/adapters/logger"
	"listing-service/internal/contextkeys"
)

const defaultOwner = "local"

// CLI хранит общие флаги и потоки вывода всех команд.
type CLI struct {
	out    io.Writer
	errOut io.Writer

	verbose      bool
	apiURL       string
	favoritesDir string
	owner        string
	timeout      time.Duration
}

func New(out, errOut io.Writer) *CLI {
	return &CLI{out: out, errOut: errOut}
}

// RootCommand собирает дерево команд.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "listingctl",
		Short:        "Search property listings and manage local favorites",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := logger_adapter.NewCharmLoggerAdapter(c.errOut, c.verbose)
			cmd.SetContext(contextkeys.ContextWithLogger(cmd.Context(), logger))
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.apiURL, "api-url", envOr("LISTING_API_URL", "http://localhost:3000/api"), "base URL of the listing service")
	flags.StringVar(&c.favoritesDir, "favorites-dir", envOr("LISTINGCTL_FAVORITES_DIR", defaultFavoritesDir()), "directory for local favorites")
	flags.StringVar(&c.owner, "owner", defaultOwner, "favorites owner")
	flags.DurationVar(&c.timeout, "timeout", 10*time.Second, "listing service request timeout")

	root.AddCommand(c.newSearchCmd())
	root.AddCommand(c.newFavoritesCmd())
	return root
}

// Execute - точка входа cmd/listingctl.
func Execute(ctx context.Context) error {
	return New(os.Stdout, os.Stderr).RootCommand().ExecuteContext(ctx)
}

func (c *CLI) favoritesStore() (*favorites_store.Store, error) {
	kv, err := filestore.NewKeyValueStore(c.favoritesDir)
	if err != nil {
		return nil, fmt.Errorf("open favorites dir: %w", err)
	}
	return favorites_store.NewStore(kv)
}

func defaultFavoritesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".listingctl"
	}
	return filepath.Join(home, ".listingctl", "favorites")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
