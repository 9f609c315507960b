package server

import "strings"

// migrate runs database migrations
func (s *Server) migrate() error {
	migrations := []string{
		migrationUsers,
		migrationSessions,
		migrationClients,
		migrationProjects,
		migrationTasks,
		migrationTimeEntries,
	}

	for _, m := range migrations {
		if s.driver == DriverPostgres {
			m = strings.ReplaceAll(m, "INTEGER PRIMARY KEY AUTOINCREMENT", "BIGSERIAL PRIMARY KEY")
		}
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

// Dates are stored as ISO-8601 text so range filters reduce to string
// comparison, matching the hosted backend's behavior. Session expiry is
// a unix timestamp.

const migrationUsers = `
CREATE TABLE IF NOT EXISTS users (
    user_id INTEGER PRIMARY KEY AUTOINCREMENT,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    first_name VARCHAR(255) NOT NULL DEFAULT '',
    last_name VARCHAR(255) NOT NULL DEFAULT '',
    role VARCHAR(32) NOT NULL DEFAULT 'EMPLOYEE',
    manager_id BIGINT,
    is_active INTEGER NOT NULL DEFAULT 1
);
`

const migrationSessions = `
CREATE TABLE IF NOT EXISTS sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id BIGINT NOT NULL,
    token VARCHAR(64) UNIQUE NOT NULL,
    expires_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_token ON sessions(token);
`

const migrationClients = `
CREATE TABLE IF NOT EXISTS clients (
    client_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(255) NOT NULL,
    contact_email VARCHAR(255) NOT NULL DEFAULT '',
    status VARCHAR(32) NOT NULL DEFAULT 'ACTIVE'
);
`

const migrationProjects = `
CREATE TABLE IF NOT EXISTS projects (
    project_id INTEGER PRIMARY KEY AUTOINCREMENT,
    client_id BIGINT NOT NULL,
    name VARCHAR(255) NOT NULL,
    is_billable INTEGER NOT NULL DEFAULT 0,
    hourly_rate DOUBLE PRECISION,
    status VARCHAR(32) NOT NULL DEFAULT 'ACTIVE'
);

CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id);
`

const migrationTasks = `
CREATE TABLE IF NOT EXISTS tasks (
    task_id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id BIGINT NOT NULL,
    name VARCHAR(255) NOT NULL,
    status VARCHAR(32) NOT NULL DEFAULT 'ACTIVE'
);

CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
`

const migrationTimeEntries = `
CREATE TABLE IF NOT EXISTS time_entries (
    time_entry_id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id BIGINT NOT NULL,
    project_id BIGINT NOT NULL,
    task_id BIGINT,
    entry_date VARCHAR(32) NOT NULL,
    hours DOUBLE PRECISION NOT NULL,
    is_billable INTEGER NOT NULL DEFAULT 0,
    hourly_rate DOUBLE PRECISION,
    notes TEXT NOT NULL DEFAULT '',
    status VARCHAR(32) NOT NULL DEFAULT 'PENDING',
    rejection_reason TEXT NOT NULL DEFAULT '',
    created_by BIGINT NOT NULL,
    created_at VARCHAR(32) NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_entries_user_date ON time_entries(user_id, entry_date);
CREATE INDEX IF NOT EXISTS idx_entries_status ON time_entries(status);
`
