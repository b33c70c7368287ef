// Package task provides an asynchronous, error-aware computation value
// for Go. A Task describes a deferred computation that, when run, yields
// either a value or an error; it supports composition, blocking and
// bounded-blocking execution, cooperative cancellation, and parallel
// combinators over many tasks.
package task
