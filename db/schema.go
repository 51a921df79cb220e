// ABOUTME: Database schema definitions and versioned migration runner
// ABOUTME: Applies ordered schema scripts and tracks the current version per module
package db

import (
	"database/sql"
	"fmt"
)

// migrationModule keys this module's row in the version-tracking table.
const migrationModule = "rolo"

// migrations is the ordered list of schema scripts. The stored version is the
// index of the next script to apply, so append-only changes are safe on every
// startup. Scripts must be idempotent (guarded DDL) because a failed script
// does not advance the version and is retried whole on the next run.
var migrations = []string{
	`
CREATE TABLE IF NOT EXISTS companies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	website TEXT DEFAULT '',
	industry TEXT DEFAULT '',
	notes TEXT DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name);

CREATE TABLE IF NOT EXISTS contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL,
	last_name TEXT DEFAULT '',
	nickname TEXT DEFAULT '',
	email TEXT DEFAULT '',
	phone TEXT DEFAULT '',
	company_id INTEGER,
	birthday TEXT DEFAULT '',
	anniversary TEXT DEFAULT '',
	notes TEXT DEFAULT '',
	avatar_url TEXT DEFAULT '',
	tags TEXT DEFAULT '',
	custom_fields TEXT DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_contacts_email ON contacts(email);
CREATE INDEX IF NOT EXISTS idx_contacts_company_id ON contacts(company_id);
CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts(first_name, last_name);
`,
	`
CREATE TABLE IF NOT EXISTS interactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	contact_id INTEGER NOT NULL,
	type TEXT NOT NULL DEFAULT 'note',
	summary TEXT NOT NULL,
	notes TEXT DEFAULT '',
	happened_at DATETIME NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_interactions_contact ON interactions(contact_id);
CREATE INDEX IF NOT EXISTS idx_interactions_happened ON interactions(happened_at DESC);

CREATE TABLE IF NOT EXISTS reminders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	contact_id INTEGER NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('birthday', 'anniversary', 'custom')),
	target_date TEXT NOT NULL,
	message TEXT DEFAULT '',
	created_at DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_reminders_contact ON reminders(contact_id);
CREATE INDEX IF NOT EXISTS idx_reminders_target ON reminders(target_date);
`,
	`
CREATE TABLE IF NOT EXISTS relationships (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	contact_id INTEGER NOT NULL,
	related_contact_id INTEGER NOT NULL,
	relationship_type TEXT NOT NULL DEFAULT '',
	notes TEXT DEFAULT '',
	created_at DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE,
	FOREIGN KEY (related_contact_id) REFERENCES contacts(id) ON DELETE CASCADE,
	UNIQUE(contact_id, related_contact_id, relationship_type)
);

CREATE INDEX IF NOT EXISTS idx_relationships_contact ON relationships(contact_id);
CREATE INDEX IF NOT EXISTS idx_relationships_related ON relationships(related_contact_id);
`,
	`
CREATE TABLE IF NOT EXISTS groups (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	description TEXT DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS group_members (
	group_id INTEGER NOT NULL,
	contact_id INTEGER NOT NULL,
	added_at DATETIME NOT NULL,
	PRIMARY KEY (group_id, contact_id),
	FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE,
	FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_group_members_contact ON group_members(contact_id);
`,
	`
CREATE TABLE IF NOT EXISTS extension_fields (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	contact_id INTEGER,
	company_id INTEGER,
	source TEXT NOT NULL,
	field_name TEXT NOT NULL,
	field_value TEXT DEFAULT '',
	label TEXT DEFAULT '',
	field_type TEXT NOT NULL DEFAULT 'text' CHECK(field_type IN ('text', 'url', 'date', 'number', 'json')),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE,
	FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_extension_fields_contact ON extension_fields(contact_id, source);
CREATE INDEX IF NOT EXISTS idx_extension_fields_company ON extension_fields(company_id, source);
`,
}

// Migrate applies every pending migration script in order. Safe to call on
// every startup; a no-op when the stored version is current.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			module TEXT PRIMARY KEY,
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}

	version, err := currentVersion(db)
	if err != nil {
		return err
	}

	for i := version; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
		if err := setVersion(db, i+1); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", i, err)
		}
	}

	return nil
}

// SchemaVersion returns the stored migration version for this module.
func SchemaVersion(db *sql.DB) (int, error) {
	return currentVersion(db)
}

func currentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`SELECT version FROM schema_migrations WHERE module = ?`, migrationModule).Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return version, nil
}

func setVersion(db *sql.DB, version int) error {
	_, err := db.Exec(`
		INSERT INTO schema_migrations (module, version) VALUES (?, ?)
		ON CONFLICT(module) DO UPDATE SET version = excluded.version
	`, migrationModule, version)
	return err
}
