package entities

type ApiKey struct {
	Key    string `db:"key"`
	Status bool   `db:"status"`
}
