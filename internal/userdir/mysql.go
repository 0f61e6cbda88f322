package userdir

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/amir01mn/parking-space-reservation/internal/pricing"
)

// MySQLDirectory resolves user categories from a MySQL users table.  It is
// the directory of choice when the registration system runs against a real
// database instead of the legacy user file.
type MySQLDirectory struct {
	db *sql.DB
}

// OpenMySQLDirectory connects to MySQL, verifies the connection and returns
// a directory over the users table.
func OpenMySQLDirectory(user, pass, host, port, name string) (*MySQLDirectory, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &MySQLDirectory{db: db}, nil
}

// Category returns the category of the user with the given ID, or
// pricing.ErrUnknownUser when no such row exists.
func (d *MySQLDirectory) Category(ctx context.Context, userID int) (string, error) {
	const q = `SELECT category FROM users WHERE id = ?`
	var category string
	err := d.db.QueryRowContext(ctx, q, userID).Scan(&category)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %d", pricing.ErrUnknownUser, userID)
	}
	if err != nil {
		return "", err
	}
	return category, nil
}

// Close releases the underlying connection pool.
func (d *MySQLDirectory) Close() error { return d.db.Close() }
