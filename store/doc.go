package store

// Package store provides SQLite-backed access to the Northwind Employees
// table: one parameterized statement per operation over a short-lived
// database handle supplied by a Connector.
