package storage

// Schema is the SQL schema for the projectstack.db database.
const Schema = `
CREATE TABLE IF NOT EXISTS projects (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    summary    TEXT NULL,
    prd_url    TEXT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS knowledge_entries (
    id         TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES projects(id),
    content    TEXT NOT NULL,
    summary    TEXT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS action_items (
    id         TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES projects(id),
    title      TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT 'pending'
               CHECK(status IN ('pending', 'done')),
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS linked_jira_items (
    id         TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES projects(id),
    jira_key   TEXT NOT NULL,
    jira_title TEXT NOT NULL,
    jira_url   TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS user_preferences (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE VIRTUAL TABLE IF NOT EXISTS knowledge_fts USING fts5(
    content,
    content='knowledge_entries',
    content_rowid='rowid'
);

CREATE INDEX IF NOT EXISTS idx_knowledge_project ON knowledge_entries(project_id);
CREATE INDEX IF NOT EXISTS idx_action_items_project ON action_items(project_id);
CREATE INDEX IF NOT EXISTS idx_jira_items_project ON linked_jira_items(project_id);
CREATE INDEX IF NOT EXISTS idx_jira_items_key ON linked_jira_items(jira_key);
`

// Triggers keep the FTS index in sync with knowledge_entries. Executed
// separately since CREATE TRIGGER runs one statement at a time cleanly.
const Triggers = `
CREATE TRIGGER IF NOT EXISTS knowledge_ai AFTER INSERT ON knowledge_entries BEGIN
    INSERT INTO knowledge_fts(rowid, content) VALUES (new.rowid, new.content);
END;
CREATE TRIGGER IF NOT EXISTS knowledge_ad AFTER DELETE ON knowledge_entries BEGIN
    INSERT INTO knowledge_fts(knowledge_fts, rowid, content) VALUES('delete', old.rowid, old.content);
END;
`
