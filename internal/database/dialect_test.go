package database

import (
	"strings"
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT * FROM reports WHERE yohoe_id = ? AND report_date >= ?"
		if dialect.RewriteQuery(query) != query {
			t.Error("SQLite should not rewrite placeholders")
		}
	})

	t.Run("UpsertThemeQuery", func(t *testing.T) {
		query := dialect.UpsertThemeQuery()
		if !strings.Contains(query, "ON CONFLICT(week_date)") {
			t.Errorf("theme upsert should key on week_date: %s", query)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT * FROM reports WHERE yohoe_id = ? AND report_date >= ?"
		result := dialect.RewriteQuery(query)
		expected := "SELECT * FROM reports WHERE yohoe_id = $1 AND report_date >= $2"
		if result != expected {
			t.Errorf("RewriteQuery() = %v, want %v", result, expected)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})

	t.Run("UpsertSettingQuery", func(t *testing.T) {
		query := dialect.UpsertSettingQuery()
		if !strings.Contains(query, "ON DUPLICATE KEY UPDATE") {
			t.Errorf("MySQL upsert should use ON DUPLICATE KEY UPDATE: %s", query)
		}
	})
}
