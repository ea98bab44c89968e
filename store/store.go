package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// employeeColumns is the column contract shared by every statement in
// this package. Scan destinations in scanEmployee follow this list, not
// the table's physical column order.
const employeeColumns = `EmployeeId, LastName, FirstName, Title, TitleOfCourtesy,
	BirthDate, HireDate, Address, City, Region, PostalCode, Country,
	HomePhone, Extension, Notes, ReportsTo, PhotoPath`

// EmployeeStore executes one parameterized statement per call against
// the Employees table. It holds nothing besides its two immutable
// dependencies, so a single value may be shared by concurrent callers;
// isolation between calls comes from each call using its own handle.
type EmployeeStore struct {
	connector  Connector
	connString string
}

func New(connector Connector, connString string) (*EmployeeStore, error) {
	if connector == nil {
		return nil, fmt.Errorf("%w: connector is nil", ErrInvalidArgument)
	}
	if strings.TrimSpace(connString) == "" {
		return nil, fmt.Errorf("%w: connection string is blank", ErrInvalidArgument)
	}
	return &EmployeeStore{connector: connector, connString: connString}, nil
}

// List returns every employee. An empty table yields an empty slice,
// never an error.
func (s *EmployeeStore) List(ctx context.Context) ([]Employee, error) {
	db, err := s.connector.Open(s.connString)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer closeQuiet(db)

	rows, err := db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM Employees`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("list employees: %w", err)
		}
		out = append(out, *employee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: iterate: %w", err)
	}
	return out, nil
}

// Get returns the employee with the given id, or ErrNotFound.
func (s *EmployeeStore) Get(ctx context.Context, id int64) (*Employee, error) {
	db, err := s.connector.Open(s.connString)
	if err != nil {
		return nil, fmt.Errorf("get employee %d: %w", id, err)
	}
	defer closeQuiet(db)

	row := db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM Employees WHERE EmployeeId = ?`, id)
	employee, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get employee %d: %w", id, err)
	}
	return employee, nil
}

// Add inserts a new row and returns the storage-assigned id. The ID
// field of the argument is ignored. LastInsertId comes from the insert's
// own statement result, so the returned id corresponds to this row even
// with concurrent writers.
func (s *EmployeeStore) Add(ctx context.Context, employee *Employee) (int64, error) {
	if employee == nil {
		return 0, fmt.Errorf("%w: employee is nil", ErrInvalidArgument)
	}

	db, err := s.connector.Open(s.connString)
	if err != nil {
		return 0, fmt.Errorf("add employee: %w", err)
	}
	defer closeQuiet(db)

	result, err := db.ExecContext(ctx, `
		INSERT INTO Employees(LastName, FirstName, Title, TitleOfCourtesy,
			BirthDate, HireDate, Address, City, Region, PostalCode, Country,
			HomePhone, Extension, Notes, ReportsTo, PhotoPath)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, employee.LastName, employee.FirstName, employee.Title, employee.TitleOfCourtesy,
		fmtTime(employee.BirthDate), fmtTime(employee.HireDate), employee.Address,
		employee.City, nullString(employee.Region), employee.PostalCode,
		employee.Country, employee.HomePhone, employee.Extension, employee.Notes,
		nullInt64(employee.ReportsTo), employee.PhotoPath)
	if err != nil {
		return 0, fmt.Errorf("add employee: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add employee: last insert id: %w", err)
	}
	return id, nil
}

// Update rewrites every column of the row whose EmployeeId matches
// employee.ID. The id itself is never reassigned. Returns ErrNotFound
// when no row matched.
func (s *EmployeeStore) Update(ctx context.Context, employee *Employee) error {
	if employee == nil {
		return fmt.Errorf("%w: employee is nil", ErrInvalidArgument)
	}

	db, err := s.connector.Open(s.connString)
	if err != nil {
		return fmt.Errorf("update employee %d: %w", employee.ID, err)
	}
	defer closeQuiet(db)

	result, err := db.ExecContext(ctx, `
		UPDATE Employees
		SET LastName = ?, FirstName = ?, Title = ?, TitleOfCourtesy = ?,
			BirthDate = ?, HireDate = ?, Address = ?, City = ?, Region = ?,
			PostalCode = ?, Country = ?, HomePhone = ?, Extension = ?,
			Notes = ?, ReportsTo = ?, PhotoPath = ?
		WHERE EmployeeId = ?
	`, employee.LastName, employee.FirstName, employee.Title, employee.TitleOfCourtesy,
		fmtTime(employee.BirthDate), fmtTime(employee.HireDate), employee.Address,
		employee.City, nullString(employee.Region), employee.PostalCode,
		employee.Country, employee.HomePhone, employee.Extension, employee.Notes,
		nullInt64(employee.ReportsTo), employee.PhotoPath, employee.ID)
	if err != nil {
		return fmt.Errorf("update employee %d: %w", employee.ID, err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update employee %d: rows affected: %w", employee.ID, err)
	}
	if count == 0 {
		return fmt.Errorf("employee %d: %w", employee.ID, ErrNotFound)
	}
	return nil
}

// Remove deletes the row with the given id. Deleting an id that does not
// exist is not an error.
func (s *EmployeeStore) Remove(ctx context.Context, id int64) error {
	db, err := s.connector.Open(s.connString)
	if err != nil {
		return fmt.Errorf("remove employee %d: %w", id, err)
	}
	defer closeQuiet(db)

	if _, err := db.ExecContext(ctx, `DELETE FROM Employees WHERE EmployeeId = ?`, id); err != nil {
		return fmt.Errorf("remove employee %d: %w", id, err)
	}
	return nil
}

func closeQuiet(db *sql.DB) {
	_ = db.Close()
}
