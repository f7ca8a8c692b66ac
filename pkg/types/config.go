package types

// Sync strategies for document persistence. Under SyncImmediate every
// successful mutating operation is written to disk before it returns; under
// SyncOnClose writes are deferred until Flush or Close. Revision and
// timestamp semantics are identical in both modes.
const (
	SyncImmediate = "immediate"
	SyncOnClose   = "on_close"
)

// knownSyncStrategies lists the strategies that Validate accepts.
var knownSyncStrategies = map[string]bool{
	SyncImmediate: true,
	SyncOnClose:   true,
}

// Config holds the parameters for Store.Open.
type Config struct {
	// DataDir is the directory holding document.json and audit.db.
	// Empty means the current directory.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// SyncStrategy selects the persistence cadence. Empty means
	// SyncImmediate.
	SyncStrategy string `json:"sync_strategy" yaml:"sync_strategy"`

	// Audit enables the SQLite execution journal.
	Audit bool `json:"audit" yaml:"audit"`
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.SyncStrategy != "" && !knownSyncStrategies[c.SyncStrategy] {
		return ErrSyncStrategyUnknown
	}
	return nil
}

// EffectiveSyncStrategy returns the configured strategy, defaulting to
// SyncImmediate when unset.
func (c Config) EffectiveSyncStrategy() string {
	if c.SyncStrategy == "" {
		return SyncImmediate
	}
	return c.SyncStrategy
}
