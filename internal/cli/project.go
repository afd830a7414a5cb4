package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/berth-dev/swipe/internal/catalog"
	"github.com/berth-dev/swipe/internal/config"
	swipelog "github.com/berth-dev/swipe/internal/log"
	"github.com/berth-dev/swipe/internal/submit"
	"github.com/berth-dev/swipe/internal/tui"
)

// project is everything a command needs, resolved once at start-up.
type project struct {
	root     string
	cfg      *config.Config
	catalog  *catalog.Catalog
	endpoint config.Resolved
	logger   *zap.Logger
	events   swipelog.Sink
	eventLog *swipelog.Logger // nil when the event log is off
	client   *submit.Client
}

// loadProject reads config, catalog, and environment from the working
// directory. With diagnosticsToFile the zap output goes to the configured
// file so it stays off the terminal.
func loadProject(diagnosticsToFile bool) (*project, error) {
	root, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	return loadProjectAt(root, diagnosticsToFile)
}

func loadProjectAt(root string, diagnosticsToFile bool) (*project, error) {
	cfg, err := readConfig(root)
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(root, cfg)
	if err != nil {
		return nil, err
	}

	env, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}
	if devMode {
		env.Environment = "development"
	}
	endpoint := config.Resolve(env)

	logPath := ""
	if diagnosticsToFile && cfg.Log.Diagnostics != "" {
		logPath = resolvePath(root, cfg.Log.Diagnostics)
	}
	logger, err := swipelog.NewDiagnostics(logPath, verbose)
	if err != nil {
		return nil, err
	}

	p := &project{
		root:     root,
		cfg:      cfg,
		catalog:  cat,
		endpoint: endpoint,
		logger:   logger,
		events:   swipelog.Discard,
	}
	if cfg.Log.Events {
		l, err := swipelog.NewLogger(root)
		if err != nil {
			return nil, err
		}
		p.eventLog = l
		p.events = l
	}

	p.client = submit.New(endpoint,
		submit.WithEvents(p.events),
		submit.WithLogger(logger),
		submit.WithUserAgent(submit.DefaultUserAgent(version)),
	)

	logger.Debug("project loaded",
		zap.String("root", root),
		zap.Int("items", cat.Len()),
		zap.String("mode", endpoint.Mode.String()),
		zap.String("reason", endpoint.Reason))
	return p, nil
}

// readConfig honours --config, then .swipe/config.yaml, then defaults.
func readConfig(root string) (*config.Config, error) {
	if configPath != "" {
		return config.ReadConfigFile(configPath)
	}
	cfg, err := config.ReadConfig(root)
	if errors.Is(err, os.ErrNotExist) {
		return config.DefaultConfig(), nil
	}
	return cfg, err
}

func loadCatalog(root string, cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(resolvePath(root, cfg.Catalog))
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return c, nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// model builds the shared TUI model.
func (p *project) model() *tui.Model {
	return tui.NewModel(tui.Deps{
		Cfg:     p.cfg,
		Catalog: p.catalog,
		Client:  p.client,
		Events:  p.events,
		Logger:  p.logger,
	})
}

func (p *project) close() {
	_ = p.logger.Sync()
}

// endpointLine describes where results go.
func (p *project) endpointLine() string {
	if p.endpoint.Enabled() {
		return fmt.Sprintf("Results: %s", p.endpoint.Mode)
	}
	return fmt.Sprintf("Results: %s (%s)", p.endpoint.Mode, p.endpoint.Reason)
}
