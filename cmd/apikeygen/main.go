package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/5outh/towerlog/internal/db"
)

func main() {
	conn, err := sql.Open("postgres", db.DSN())
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	key := uuid.New().String()
	if _, err := conn.Exec(`INSERT INTO api_keys (key, status) VALUES ($1, true)`, key); err != nil {
		log.Fatalf("insert api key: %v", err)
	}

	fmt.Println("New API Key:", key)
}
