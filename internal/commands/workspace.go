package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/accountflow/accountflow/internal/auditlog"
	"github.com/accountflow/accountflow/internal/config"
	"github.com/accountflow/accountflow/internal/store"
)

// workspace bundles everything commands need from an initialized
// directory: the config, a store, and the audit log.
type workspace struct {
	root  string
	cfg   *config.Config
	store store.Store
	close func() error
}

func openWorkspace(dir string) (*workspace, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, "accountflow.yaml"))
	if err != nil {
		return nil, err
	}

	ws := &workspace{root: root, cfg: cfg, close: func() error { return nil }}
	switch cfg.Storage.Backend {
	case "sqlite":
		s, err := store.OpenSQLite(root)
		if err != nil {
			return nil, err
		}
		ws.store = s
		ws.close = s.Close
	default:
		ws.store = store.NewMemory()
	}
	return ws, nil
}

func (ws *workspace) storeContext() store.Context {
	return store.Context{CompanyID: ws.cfg.Business.CompanyID}
}

// audit appends one entry to the workspace audit log. Logging failures
// are reported but never fail the command.
func (ws *workspace) audit(action, analysisID, details string) {
	if !ws.cfg.Audit.Enabled {
		return
	}
	entry := auditlog.Entry{
		Timestamp:  time.Now().UTC(),
		Actor:      ws.cfg.Audit.Actor,
		Action:     action,
		AnalysisID: analysisID,
		Details:    details,
	}
	if err := auditlog.Append(ws.root, []auditlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write audit log: %v\n", err)
	}
}
