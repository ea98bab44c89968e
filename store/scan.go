package store

import (
	"database/sql"
	"fmt"
	"time"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(scanner rowScanner) (*Employee, error) {
	var (
		employee  Employee
		birthDate string
		hireDate  string
		region    sql.NullString
		reportsTo sql.NullInt64
	)

	if err := scanner.Scan(&employee.ID, &employee.LastName, &employee.FirstName,
		&employee.Title, &employee.TitleOfCourtesy, &birthDate, &hireDate,
		&employee.Address, &employee.City, &region, &employee.PostalCode,
		&employee.Country, &employee.HomePhone, &employee.Extension,
		&employee.Notes, &reportsTo, &employee.PhotoPath); err != nil {
		return nil, err
	}

	parsedBirthDate, err := parseTime(birthDate)
	if err != nil {
		return nil, err
	}
	parsedHireDate, err := parseTime(hireDate)
	if err != nil {
		return nil, err
	}
	employee.BirthDate = parsedBirthDate
	employee.HireDate = parsedHireDate

	if region.Valid {
		value := region.String
		employee.Region = &value
	}
	if reportsTo.Valid {
		value := reportsTo.Int64
		employee.ReportsTo = &value
	}
	return &employee, nil
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return t, nil
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
