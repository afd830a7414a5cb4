// collect.go implements "swipe collect", a webhook receiver that stores
// submissions in SQLite.
package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/berth-dev/swipe/internal/collector"
	"github.com/berth-dev/swipe/internal/config"
	"github.com/berth-dev/swipe/internal/session"
)

const defaultDB = "collect.db"

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run a webhook endpoint that stores submissions",
	Long: `Listen for submissions and store them in a local SQLite database.
Point SWIPE_ENDPOINT_URL at http://<addr>/append to use it.`,
	RunE: runCollect,
}

var (
	collectAddr string
	dbPath      string
)

func init() {
	collectCmd.Flags().StringVar(&collectAddr, "addr", ":8787", "Listen address")
	collectCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database (default .swipe/collect.db)")
	reportCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database (default .swipe/collect.db)")
}

func runCollect(cmd *cobra.Command, args []string) error {
	p, err := loadProject(false)
	if err != nil {
		return err
	}
	defer p.close()

	path := databasePath(p.root)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	store, err := session.NewStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ln, err := net.Listen("tcp", collectAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", collectAddr, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Collecting on http://%s/append (db %s)\n", ln.Addr(), path)
	p.logger.Info("collector started", zap.String("addr", ln.Addr().String()), zap.String("db", path))

	return serve(ctx, ln, store, p.logger)
}

func serve(ctx context.Context, ln net.Listener, store *session.Store, logger *zap.Logger) error {
	return collector.Serve(ctx, ln, collector.NewRouter(store, logger), logger)
}

// databasePath resolves --db against root.
func databasePath(root string) string {
	if dbPath != "" {
		return resolvePath(root, dbPath)
	}
	return filepath.Join(config.Dir(root), defaultDB)
}
