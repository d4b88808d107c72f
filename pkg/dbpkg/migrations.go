package dbpkg

import "database/sql"

// schema contains the SQL statements to set up the database.
// These run on startup to ensure tables exist. Monetary amounts are
// stored as decimal strings, never as floats.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    email TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_groups (
    email TEXT NOT NULL,
    group_name TEXT NOT NULL,
    PRIMARY KEY (email, group_name),
    FOREIGN KEY (email) REFERENCES users(email) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS groups (
    name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS group_members (
    group_name TEXT NOT NULL,
    member TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (group_name, member),
    FOREIGN KEY (group_name) REFERENCES groups(name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    group_name TEXT NOT NULL,
    expense_name TEXT NOT NULL,
    amount TEXT NOT NULL,
    payer TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS expense_splits (
    expense_id TEXT NOT NULL,
    member TEXT NOT NULL,
    amount TEXT NOT NULL,
    PRIMARY KEY (expense_id, member),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_users_name ON users(name);
CREATE INDEX IF NOT EXISTS idx_user_groups_email ON user_groups(email);
CREATE INDEX IF NOT EXISTS idx_group_members_group_name ON group_members(group_name);
CREATE INDEX IF NOT EXISTS idx_expenses_group_name ON expenses(group_name);
CREATE INDEX IF NOT EXISTS idx_expense_splits_expense_id ON expense_splits(expense_id);
`

// RunMigrations executes the schema setup.
func RunMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
