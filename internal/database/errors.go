package database

import "fmt"

// ConnectionError indicates that the database file could not be opened or
// the driver could not be initialized. Fatal to any operation attempted
// while it persists.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("open database %s: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// SchemaInitError indicates that creating a table failed. This is distinct
// from a missing-column migration, which is tolerated; a database without
// its tables is unusable, so schema init failures are fatal at startup.
type SchemaInitError struct {
	Table string
	Err   error
}

func (e *SchemaInitError) Error() string {
	return fmt.Sprintf("create table %s: %v", e.Table, e.Err)
}

func (e *SchemaInitError) Unwrap() error { return e.Err }

// PersistenceError indicates that a single insert/select/update/delete
// failed. Callers backing UI code typically treat it as an empty result or
// a no-op; the wrapped cause is preserved for logging.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// persistErr wraps a driver error with the failing operation's name.
func persistErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
