// Package trace records the execution of a riscy program to a SQLite
// database, one row per executed instruction.
package trace

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"

	"github.com/ezrec/riscy/cpu"
	"github.com/ezrec/riscy/translate"
)

var f = translate.From

var log = commonlog.GetLogger("riscy.trace")

var ErrClosed = errors.New(f("trace closed"))

const schema = `CREATE TABLE IF NOT EXISTS steps (
	tick INTEGER PRIMARY KEY,
	pc INTEGER NOT NULL,
	word INTEGER NOT NULL,
	opcode TEXT NOT NULL,
	r0 INTEGER NOT NULL, r1 INTEGER NOT NULL,
	r2 INTEGER NOT NULL, r3 INTEGER NOT NULL,
	r4 INTEGER NOT NULL, r5 INTEGER NOT NULL,
	r6 INTEGER NOT NULL, r7 INTEGER NOT NULL
)`

const insert = `INSERT OR REPLACE INTO steps
	(tick, pc, word, opcode, r0, r1, r2, r3, r4, r5, r6, r7)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const query = `SELECT tick, pc, word, r0, r1, r2, r3, r4, r5, r6, r7
	FROM steps ORDER BY tick`

// Recorder stores emulator steps in a SQLite database.
type Recorder struct {
	db     *sql.DB
	insert *sql.Stmt
}

// Open opens, or creates, a trace database. Steps from a previous run with
// the same tick numbers are replaced.
func Open(path string) (rec *Recorder, err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		err = fmt.Errorf("opening trace: %w", err)
		return
	}

	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		err = fmt.Errorf("creating steps table: %w", err)
		return
	}

	stmt, err := db.Prepare(insert)
	if err != nil {
		db.Close()
		err = fmt.Errorf("preparing insert: %w", err)
		return
	}

	log.Debugf("trace: %v", path)

	rec = &Recorder{db: db, insert: stmt}
	return
}

// Record stores a single step.
func (rec *Recorder) Record(step cpu.Step) (err error) {
	if rec.db == nil {
		err = ErrClosed
		return
	}

	args := []any{
		int64(step.Tick),
		int64(step.Pc),
		int64(step.Code),
		step.Fields.Opcode.String(),
	}
	for _, reg := range step.Register {
		args = append(args, int64(reg))
	}

	_, err = rec.insert.Exec(args...)
	return
}

// Steps returns every recorded step, in tick order.
func (rec *Recorder) Steps() (steps []cpu.Step, err error) {
	if rec.db == nil {
		err = ErrClosed
		return
	}

	rows, err := rec.db.Query(query)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var step cpu.Step
		var tick, pc, word int64
		var regs [8]int64
		dest := []any{&tick, &pc, &word}
		for n := range regs {
			dest = append(dest, &regs[n])
		}

		err = rows.Scan(dest...)
		if err != nil {
			return
		}

		step.Tick = uint64(tick)
		step.Pc = uint16(pc)
		step.Code = cpu.Code(word)
		step.Fields = step.Code.Decode()
		for n, reg := range regs {
			step.Register[n] = uint16(reg)
		}
		steps = append(steps, step)
	}

	err = rows.Err()
	return
}

// Close the trace database.
func (rec *Recorder) Close() (err error) {
	if rec.db == nil {
		return
	}

	err = errors.Join(rec.insert.Close(), rec.db.Close())
	rec.db = nil

	return
}
