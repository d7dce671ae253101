package migration

import "context"

// indexStatements are PostgreSQL indexes that gorm tags cannot describe
var indexStatements = []struct {
	name string
	sql  string
}{
	{
		name: "idx_machines_sync_eligible",
		sql: `CREATE INDEX IF NOT EXISTS idx_machines_sync_eligible
			ON machines (id)
			WHERE approval_status = 'approved' AND external_id IS NOT NULL AND external_id <> ''`,
	},
	{
		name: "idx_transactions_machine_authorized_at",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_machine_authorized_at
			ON transactions (machine_id, authorized_at DESC)`,
	},
	{
		name: "idx_transactions_completed",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_completed
			ON transactions (machine_id)
			WHERE status = 'completed'`,
	},
	{
		name: "idx_transactions_raw_payload",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_raw_payload
			ON transactions USING GIN (raw_payload jsonb_path_ops)`,
	},
}

// createIndexes creates partial and GIN indexes used by sync and reporting queries
func (m *MigrationManager) createIndexes(ctx context.Context) error {
	m.logger.Info("Creating database indexes", nil)

	for _, index := range indexStatements {
		if err := m.db.WithContext(ctx).Exec(index.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": index.name,
				"error": err.Error(),
			})
			return err
		}
	}
	return nil
}
