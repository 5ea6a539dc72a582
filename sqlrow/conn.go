package sqlrow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
)

// Execer runs statements. *sql.DB, *sql.Conn, *sql.Tx and *Conn satisfy it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Preparer prepares statements. *sql.DB, *sql.Conn and *sql.Tx satisfy it.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Conn caches prepared statements for one connection and serializes writes
// through it. Prepared statements are never shared between Conns; create one
// Conn per connection.
type Conn struct {
	p Preparer

	mu     sync.Mutex
	stmts  map[string]*sql.Stmt
	closed bool
}

// NewConn wraps p with a statement cache.
func NewConn(p Preparer) *Conn {
	return &Conn{
		p:     p,
		stmts: make(map[string]*sql.Stmt),
	}
}

// ErrConnClosed is returned by a Conn after Close.
var ErrConnClosed = errors.New("sqlrow: connection closed")

// ExecContext prepares query once, caches it, and executes it with args.
func (c *Conn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrConnClosed
	}

	stmt, ok := c.stmts[query]
	if !ok {
		var err error

		stmt, err = c.p.PrepareContext(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("preparing statement: %w", err)
		}

		c.stmts[query] = stmt
	}

	return stmt.ExecContext(ctx, args...)
}

// Cached returns the number of cached statements.
func (c *Conn) Cached() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.stmts)
}

// Close closes every cached statement. The wrapped connection is left open.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for q, stmt := range c.stmts {
		if err := stmt.Close(); err != nil {
			errs = append(errs, err)
		}

		delete(c.stmts, q)
	}

	c.closed = true

	return errors.Join(errs...)
}
