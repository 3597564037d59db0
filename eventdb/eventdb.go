// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb persists the operation history of the ledger in
// sqlite, queryable by kind, owner and time range.
package eventdb

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/techhy-ecosystem/tokenomics/thy"
)

// Kind names an operation recorded in the history.
type Kind string

const (
	KindBurnLock Kind = "burnlock"
	KindTransfer Kind = "transfer"
	KindStake    Kind = "stake"
	KindUnstake  Kind = "unstake"
	KindFeeKey   Kind = "feekey"
)

// Event is one recorded operation. The numeric fields carry
// kind-dependent values: Amount is the principal quantity moved (VC
// burned, gross transfer, staked or withdrawn principal), Minted the
// governance tokens created (conversion reward or staking payout), and
// Tax the levy withheld from a transfer.
type Event struct {
	Sequence     uint64
	Kind         Kind
	Timestamp    uint64
	Owner        thy.Address
	Counterparty *thy.Address
	Amount       uint64
	Minted       uint64
	Tax          uint64
}

// Order of the returned events by sequence.
type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Filter narrows and pages a history query. Nil field means no
// constraint.
type Filter struct {
	Kind     *Kind
	Owner    *thy.Address
	FromTime *uint64
	ToTime   *uint64
	Order    Order
	Offset   uint64
	Limit    uint64
}

const tableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	ts INTEGER NOT NULL,
	owner BLOB(20) NOT NULL,
	counterparty BLOB(20),
	amount INTEGER NOT NULL,
	minted INTEGER NOT NULL,
	tax INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS event_owner ON event(owner);
CREATE INDEX IF NOT EXISTS event_kind ON event(kind);`

// EventDB is the sqlite-backed history store.
type EventDB struct {
	path string
	db   *sql.DB
}

// New creates or opens the event db at the given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(tableSchema); err != nil {
		return nil, err
	}
	return &EventDB{path, db}, nil
}

// NewMem creates an event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Close closes the event db.
func (db *EventDB) Close() error {
	return db.db.Close()
}

func (db *EventDB) Path() string {
	return db.path
}

// Write appends one event to the history.
func (db *EventDB) Write(ctx context.Context, ev *Event) error {
	var counterparty []byte
	if ev.Counterparty != nil {
		counterparty = ev.Counterparty.Bytes()
	}
	_, err := db.db.ExecContext(ctx,
		"INSERT INTO event(kind, ts, owner, counterparty, amount, minted, tax) VALUES(?,?,?,?,?,?,?)",
		string(ev.Kind),
		int64(ev.Timestamp),
		ev.Owner.Bytes(),
		counterparty,
		int64(ev.Amount),
		int64(ev.Minted),
		int64(ev.Tax),
	)
	return err
}

// Filter returns the events matching the filter, a nil filter meaning
// the full history in ascending order.
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query(ctx, "SELECT * FROM event ORDER BY seq ASC")
	}
	var args []interface{}
	stmt := "SELECT * FROM event WHERE 1"
	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		stmt += " AND kind = ? "
	}
	if filter.Owner != nil {
		args = append(args, filter.Owner.Bytes())
		stmt += " AND owner = ? "
	}
	if filter.FromTime != nil {
		args = append(args, int64(*filter.FromTime))
		stmt += " AND ts >= ? "
	}
	if filter.ToTime != nil {
		args = append(args, int64(*filter.ToTime))
		stmt += " AND ts <= ? "
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}
	if filter.Limit > 0 {
		stmt += " LIMIT ?, ? "
		args = append(args, int64(filter.Offset), int64(filter.Limit))
	}
	return db.query(ctx, stmt, args...)
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...interface{}) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq          int64
			kind         string
			ts           int64
			owner        []byte
			counterparty []byte
			amount       int64
			minted       int64
			tax          int64
		)
		if err := rows.Scan(&seq, &kind, &ts, &owner, &counterparty, &amount, &minted, &tax); err != nil {
			return nil, err
		}
		ev := &Event{
			Sequence:  uint64(seq),
			Kind:      Kind(kind),
			Timestamp: uint64(ts),
			Owner:     thy.BytesToAddress(owner),
			Amount:    uint64(amount),
			Minted:    uint64(minted),
			Tax:       uint64(tax),
		}
		if len(counterparty) > 0 {
			addr := thy.BytesToAddress(counterparty)
			ev.Counterparty = &addr
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
