// Copyright 2024 The Whippet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine wraps embedded SQL engines used as query backends.
package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownEngine is returned by Lookup for names nobody registered.
var ErrUnknownEngine = errors.New("engine not registered")

// ErrNoColumns is returned by Strings for statements without a result column.
var ErrNoColumns = errors.New("statement returns no columns")

// Engine is an embedded engine able to host an in-memory copy of a Parquet
// file.
type Engine interface {
	// Name is the registry name of the engine.
	Name() string
	// Open returns a connection to a fresh in-memory database.
	Open(ctx context.Context) (*Conn, error)
	// LoadParquet creates table in c holding all rows of the Parquet file at
	// path.
	LoadParquet(ctx context.Context, c *Conn, table, path string) error
}

var registered = map[string]Engine{}

// Register makes e available by its name. It panics on duplicate names.
func Register(e Engine) {
	nm := e.Name()
	if _, ok := registered[nm]; ok {
		panic(fmt.Errorf("already registered: %s", nm))
	}

	registered[nm] = e
}

// Lookup returns the engine registered as name.
func Lookup(name string) (Engine, error) {
	e, ok := registered[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownEngine, name, strings.Join(List(), ", "))
	}
	return e, nil
}

// List returns the sorted names of all registered engines.
func List() []string {
	r := []string{}
	for k := range registered {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// Conn is an open database handle. All statements run on a single pinned
// connection, so in-memory tables and loaded extensions stay visible between
// calls. A Conn must be closed; use With where possible.
type Conn struct {
	db     *sql.DB
	conn   *sql.Conn
	driver string
}

// Open opens dsn with the database/sql driver driverName and pins one
// connection.
func Open(ctx context.Context, driverName, dsn string) (*Conn, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: connect: %w", driverName, err)
	}

	return &Conn{db: db, conn: conn, driver: driverName}, nil
}

// With opens a connection of e, passes it to fn and closes it on every exit
// path, including panics. A close error is returned only if fn succeeded.
func With(ctx context.Context, e Engine, fn func(*Conn) error) (err error) {
	c, err := e.Open(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(c)
}

// Driver returns the database/sql driver name of c.
func (c *Conn) Driver() string { return c.driver }

// Exec executes statements that return no rows.
func (c *Conn) Exec(ctx context.Context, query string, args ...interface{}) error {
	if c.conn == nil {
		return sql.ErrConnDone
	}

	if _, err := c.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", abbrev(query), err)
	}
	return nil
}

// Query executes a query returning rows. The caller must close the rows.
func (c *Conn) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	if c.conn == nil {
		return nil, sql.ErrConnDone
	}

	rows, err := c.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", abbrev(query), err)
	}
	return rows, nil
}

// Drain executes query and iterates its whole result set without decoding
// the values. It returns the number of rows.
func (c *Conn) Drain(ctx context.Context, query string) (n int64, err error) {
	rows, err := c.Query(ctx, query)
	if err != nil {
		return 0, err
	}

	defer func() {
		if e := rows.Close(); e != nil && err == nil {
			err = e
		}
	}()

	for rows.Next() {
		n++
	}
	return n, rows.Err()
}

// Strings returns the first column of every row of query.
func (c *Conn) Strings(ctx context.Context, query string) (r []string, err error) {
	rows, err := c.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	defer func() {
		if e := rows.Close(); e != nil && err == nil {
			err = e
		}
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf("%s: %w", abbrev(query), ErrNoColumns)
	}

	row := make([]interface{}, len(cols))
	var s string
	row[0] = &s
	for i := 1; i < len(row); i++ {
		row[i] = new(interface{})
	}
	for rows.Next() {
		if err = rows.Scan(row...); err != nil {
			return nil, err
		}

		r = append(r, s)
	}
	return r, rows.Err()
}

// Count returns the number of rows in table.
func (c *Conn) Count(ctx context.Context, table string) (n int64, err error) {
	rows, err := c.Query(ctx, fmt.Sprintf("select count(*) from %s", QuoteIdent(table)))
	if err != nil {
		return 0, err
	}

	defer func() {
		if e := rows.Close(); e != nil && err == nil {
			err = e
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("count %s: no rows", table)
	}
	err = rows.Scan(&n)
	return n, err
}

// Begin starts a transaction on the pinned connection.
func (c *Conn) Begin(ctx context.Context) (*sql.Tx, error) {
	if c.conn == nil {
		return nil, sql.ErrConnDone
	}

	return c.conn.BeginTx(ctx, nil)
}

// Close releases the connection and the database. It is safe to call Close
// more than once.
func (c *Conn) Close() error {
	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	if e := c.db.Close(); e != nil && err == nil {
		err = e
	}
	c.conn, c.db = nil, nil
	return err
}

// QuoteIdent quotes s as an SQL identifier.
func QuoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// QuoteString quotes s as an SQL string literal.
func QuoteString(s string) string {
	return `'` + strings.ReplaceAll(s, `'`, `''`) + `'`
}

func abbrev(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > 60 {
		return query[:57] + "..."
	}
	return query
}
