package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the SQL statements for the fishcaught table.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Fishcaught mirrors one row of the fishcaught table.
type Fishcaught struct {
	ID          int64
	Species     string
	Weight      sql.NullFloat64
	Bait        string
	Location    string
	DateOfCatch string
	TimeOfCatch string
	Catcher     string
	ImageRef    sql.NullString
}

const createCatch = `
INSERT INTO fishcaught (species, weight, bait, location, date_of_catch, time_of_catch, catcher, image_ref)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id
`

type CreateCatchParams struct {
	Species     string
	Weight      sql.NullFloat64
	Bait        string
	Location    string
	DateOfCatch string
	TimeOfCatch string
	Catcher     string
	ImageRef    sql.NullString
}

func (q *Queries) CreateCatch(ctx context.Context, arg CreateCatchParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createCatch,
		arg.Species,
		arg.Weight,
		arg.Bait,
		arg.Location,
		arg.DateOfCatch,
		arg.TimeOfCatch,
		arg.Catcher,
		arg.ImageRef,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const listCatches = `
SELECT id, species, weight, bait, location, date_of_catch, time_of_catch, catcher, image_ref
FROM fishcaught
ORDER BY id ASC
`

func (q *Queries) ListCatches(ctx context.Context) ([]Fishcaught, error) {
	rows, err := q.db.QueryContext(ctx, listCatches)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Fishcaught{}
	for rows.Next() {
		var i Fishcaught
		if err := scanCatch(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getCatch = `
SELECT id, species, weight, bait, location, date_of_catch, time_of_catch, catcher, image_ref
FROM fishcaught
WHERE id = ?
`

func (q *Queries) GetCatch(ctx context.Context, id int64) (Fishcaught, error) {
	row := q.db.QueryRowContext(ctx, getCatch, id)
	var i Fishcaught
	err := scanCatch(row, &i)
	return i, err
}

const deleteCatch = `
DELETE FROM fishcaught WHERE id = ?
`

// DeleteCatch returns the number of rows removed.
func (q *Queries) DeleteCatch(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteCatch, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCatch(s scanner, i *Fishcaught) error {
	return s.Scan(
		&i.ID,
		&i.Species,
		&i.Weight,
		&i.Bait,
		&i.Location,
		&i.DateOfCatch,
		&i.TimeOfCatch,
		&i.Catcher,
		&i.ImageRef,
	)
}
