package store

// Schema is the exact shape of the Employees table this package reads
// and writes. It is a one-shot bootstrap for fresh databases, not a
// migration mechanism; schema evolution is owned by the caller.
// ReportsTo is deliberately not declared as a foreign key.
const Schema = `
CREATE TABLE IF NOT EXISTS Employees (
	EmployeeId      INTEGER PRIMARY KEY AUTOINCREMENT,
	LastName        TEXT NOT NULL,
	FirstName       TEXT NOT NULL,
	Title           TEXT NOT NULL,
	TitleOfCourtesy TEXT NOT NULL,
	BirthDate       DATETIME NOT NULL,
	HireDate        DATETIME NOT NULL,
	Address         TEXT NOT NULL,
	City            TEXT NOT NULL,
	Region          TEXT,
	PostalCode      TEXT NOT NULL,
	Country         TEXT NOT NULL,
	HomePhone       TEXT NOT NULL,
	Extension       TEXT NOT NULL,
	Notes           TEXT NOT NULL,
	ReportsTo       INTEGER,
	PhotoPath       TEXT NOT NULL
)`
