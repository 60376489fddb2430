package products

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const productsTable = `
CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	if err := conn.Exec("DROP TABLE IF EXISTS products").Error; err != nil {
		t.Fatalf("failed to reset products table: %v", err)
	}
	if err := conn.Exec(productsTable).Error; err != nil {
		t.Fatalf("failed to create products table: %v", err)
	}
	return conn
}
