package recording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// TableName is the table the SQLite recorder writes to.
const TableName = "log_entries"

// SQLiteRecorder inserts records into a SQLite table whose columns are the
// fields of Record.
type SQLiteRecorder struct {
	*buffer

	db     *sql.DB
	ownsDB bool
}

// NewSQLiteRecorder creates the table in db, if needed, and a recorder
// writing to it.
func NewSQLiteRecorder(db *sql.DB, sessionID string) *SQLiteRecorder {
	r := &SQLiteRecorder{db: db}
	r.buffer = newBuffer(sessionID, r.insert)

	r.mustExecute(createTableSQL())

	return r
}

// OpenSQLiteFile creates the database <path>.sqlite3 and a recorder on it.
// An empty path picks a unique name. The file must not exist. It is flushed
// and closed at exit.
func OpenSQLiteFile(path, sessionID string) *SQLiteRecorder {
	if path == "" {
		path = "hookscope_log_" + xid.New().String()
	}

	filename := path + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	r := NewSQLiteRecorder(db, sessionID)
	r.ownsDB = true

	atexit.Register(func() {
		if err := r.Close(); err != nil {
			panic(err)
		}
	})

	return r
}

func createTableSQL() string {
	fields := strings.Join(structs.Names(Record{}), ", \n\t")

	return `CREATE TABLE IF NOT EXISTS ` + TableName +
		` (` + "\n\t" + fields + "\n" + `);`
}

func insertSQL() string {
	n := structs.Names(Record{})
	for i := range n {
		n[i] = "?"
	}

	return "INSERT INTO " + TableName + " VALUES (" + strings.Join(n, ", ") + ")"
}

func (r *SQLiteRecorder) insert(records []Record) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(insertSQL())
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		v := reflect.ValueOf(rec)

		args := make([]any, 0, v.NumField())
		for i := 0; i < v.NumField(); i++ {
			args = append(args, v.Field(i).Interface())
		}

		if _, err := stmt.Exec(args...); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) mustExecute(query string) sql.Result {
	res, err := r.db.Exec(query)
	if err != nil {
		fmt.Printf("Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}

// Close flushes the recorder and closes the database if the recorder opened
// it.
func (r *SQLiteRecorder) Close() error {
	err := r.Flush()

	if r.ownsDB {
		r.ownsDB = false

		if closeErr := r.db.Close(); err == nil {
			err = closeErr
		}
	}

	return err
}
