// Package health waits for and reports on the environment's containers.
//
// Poller.EnsureReady implements the readiness protocol used before any
// in-container work:
//
//  1. query the service once; if it is running, return
//  2. start the whole environment (`docker compose up -d`)
//  3. up to Attempts times: sleep Interval, query again, return when running
//  4. give up with a docker error naming the attempt count
//
// A failed first query is treated as "not running". A failed query during
// polling aborts immediately.
//
// Check performs a single non-mutating status pass for reporting.
package health
