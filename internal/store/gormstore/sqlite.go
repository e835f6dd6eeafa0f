package gormstore

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteDriverName is the database/sql driver whose connections provide unicode_lower
const SQLiteDriverName = "sqlite3_recipeshare"

// SQLite's built-in LOWER folds ASCII only
const sqliteLower = "unicode_lower"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(sqliteLower, strings.ToLower, true)
		},
	})
}

// OpenSQLite returns a dialector for dsn on SQLiteDriverName. Every sqlite
// connection handed to New must come from here.
func OpenSQLite(dsn string) gorm.Dialector {
	return sqlite.New(sqlite.Config{DriverName: SQLiteDriverName, DSN: dsn})
}
