// Package backend is the Conecta professional networking API: market-scoped
// feeds, likes and saves, comments, connections, job postings and
// notifications.
//
// Binaries live under cmd/ (server, migrate, seed, cli); all application
// code is under internal/.
package backend
