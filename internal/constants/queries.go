package constants

const (
	InsertLogEntry = `
	INSERT INTO logs (type, message, created_at) VALUES ($1, $2, now())
	`

	RecentLogEntries = `
	SELECT id, type, message, created_at FROM logs ORDER BY id DESC LIMIT $1
	`

	PurgeLogEntries = `
	DELETE FROM logs
	`

	GetStatusByApiKey = `
	SELECT key, status FROM api_keys WHERE key = $1
	`
)
