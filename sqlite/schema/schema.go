package schema

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/shaunharker/SQLambda/sqlite"
)

const globalSchema = `
CREATE TABLE IF NOT EXISTS _versions (
	type TEXT PRIMARY KEY,
	version INTEGER NOT NULL,
	updated TEXT
)
`

const updateVersionSql = `
INSERT INTO _versions (type, version, updated)
VALUES (?1, ?2, datetime())
ON CONFLICT (type)
DO UPDATE SET version = ?2, updated = datetime();
`

// Migration moves a component's schema to Version. Migrations of one
// component are applied in ascending Version order; SQL may hold several
// statements.
type Migration struct {
	Version int
	SQL     string
}

// Manager applies versioned schema migrations per component and records the
// applied version of each in a _versions table.
type Manager struct {
	conn       *sqlite.Connection
	components map[string][]Migration
	logger     *slog.Logger
}

// New returns a Manager for conn. A nil logger uses slog.Default().
func New(conn *sqlite.Connection, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		conn:       conn,
		components: make(map[string][]Migration),
		logger:     logger,
	}
}

// Register adds migrations for component. Versions must be positive and
// unique within the component.
func (m *Manager) Register(component string, migrations ...Migration) error {
	seen := make(map[int]bool, len(m.components[component]))
	for _, mig := range m.components[component] {
		seen[mig.Version] = true
	}
	for _, mig := range migrations {
		if mig.Version < 1 {
			return fmt.Errorf("schema: %s: version %d must be positive", component, mig.Version)
		}
		if seen[mig.Version] {
			return fmt.Errorf("schema: %s: duplicate version %d", component, mig.Version)
		}
		seen[mig.Version] = true
	}
	all := append(m.components[component], migrations...)
	sort.Slice(all, func(i, j int) bool { return all[i].Version < all[j].Version })
	m.components[component] = all
	return nil
}

// Versions returns the applied version of every component recorded in the
// database.
func (m *Manager) Versions() (map[string]int, error) {
	if err := m.conn.Execute(globalSchema); err != nil {
		return nil, err
	}
	return m.versions()
}

func (m *Manager) versions() (map[string]int, error) {
	s, err := m.conn.Prepare("SELECT type, version FROM _versions")
	if err != nil {
		return nil, err
	}
	defer s.Close()

	out := make(map[string]int)
	err = sqlite.ForEach2(s, func(component string, version int) {
		out[component] = version
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Apply runs every pending migration in one transaction. Either all of them
// are applied or none is.
func (m *Manager) Apply() error {
	return m.conn.WithTx(func() error {
		if err := m.conn.Execute(globalSchema); err != nil {
			return fmt.Errorf("failed to create _versions: %w", err)
		}
		current, err := m.versions()
		if err != nil {
			return fmt.Errorf("failed to read versions: %w", err)
		}

		update, err := m.conn.Prepare(updateVersionSql)
		if err != nil {
			return err
		}
		defer update.Close()

		names := make([]string, 0, len(m.components))
		for name := range m.components {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			for _, mig := range m.components[name] {
				if mig.Version <= current[name] {
					continue
				}
				if err := m.conn.Execute(mig.SQL); err != nil {
					return fmt.Errorf("failed to migrate %s to version %d: %w", name, mig.Version, err)
				}
				if err := update.Bind(name, mig.Version).Exec(); err != nil {
					return fmt.Errorf("failed to record %s version %d: %w", name, mig.Version, err)
				}
				m.logger.Info("Applied schema migration", "component", name, "version", mig.Version)
			}
		}
		return nil
	})
}
