// Package queue persists batch jobs in SQLite and exposes helpers for
// driving their lifecycle.
//
// The Store manages database connections, schema initialization, duplicate
// path rejection, stats queries, and stuck-job recovery. A job captures one
// input-file-to-output-file transcode task with its own terminal state;
// terminal states are never revisited within a run.
//
// The database is transient storage for in-flight work rather than a
// long-term archive. Treat this package as the single source of truth for
// job lifecycle semantics.
package queue
