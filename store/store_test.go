package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsNilConnector(t *testing.T) {
	t.Parallel()

	_, err := New(nil, "employees.db")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewRejectsBlankConnString(t *testing.T) {
	t.Parallel()

	for _, connString := range []string{"", "   ", "\t\n"} {
		_, err := New(SQLite{}, connString)
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestNewAcceptsValidArguments(t *testing.T) {
	t.Parallel()

	s, err := New(SQLite{}, "employees.db")
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestListEmptyTableReturnsEmptySlice(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestListReturnsEveryRow(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	want := map[int64]Employee{}
	for i := 0; i < 5; i++ {
		employee := sampleEmployee()
		employee.LastName = fmt.Sprintf("Last%d", i)
		id, err := s.Add(ctx, &employee)
		require.NoError(t, err)
		employee.ID = id
		want[id] = employee
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for _, got := range list {
		expected, ok := want[got.ID]
		require.True(t, ok)
		requireSameEmployee(t, expected, got)
	}
}

func TestGetMissingIDFailsWithNotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Get(context.Background(), 12345)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddThenGetRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	employee := sampleEmployee()
	id, err := s.Add(ctx, &employee)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	employee.ID = id
	requireSameEmployee(t, employee, *got)
}

func TestAddAssignsIncreasingIDs(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	first := sampleEmployee()
	second := sampleEmployee()
	firstID, err := s.Add(ctx, &first)
	require.NoError(t, err)
	secondID, err := s.Add(ctx, &second)
	require.NoError(t, err)
	require.Greater(t, secondID, firstID)
}

func TestAddNilEmployeeFails(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Add(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOptionalColumnsRoundTripWhenSet(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	region := "WA"
	manager := sampleEmployee()
	managerID, err := s.Add(ctx, &manager)
	require.NoError(t, err)

	employee := sampleEmployee()
	employee.Region = &region
	employee.ReportsTo = &managerID
	id, err := s.Add(ctx, &employee)
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.Region)
	require.Equal(t, "WA", *got.Region)
	require.NotNil(t, got.ReportsTo)
	require.Equal(t, managerID, *got.ReportsTo)
}

func TestUpdateMissingIDFailsWithNotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	employee := sampleEmployee()
	employee.ID = 999
	err := s.Update(context.Background(), &employee)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRewritesEveryField(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	employee := sampleEmployee()
	id, err := s.Add(ctx, &employee)
	require.NoError(t, err)

	region := "BC"
	employee.ID = id
	employee.LastName = "Jones"
	employee.Title = "Sales Manager"
	employee.City = "Vancouver"
	employee.Region = &region
	employee.HireDate = time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Update(ctx, &employee))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	requireSameEmployee(t, employee, *got)
}

func TestUpdateClearsOptionalColumns(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	region := "SP"
	employee := sampleEmployee()
	employee.Region = &region
	id, err := s.Add(ctx, &employee)
	require.NoError(t, err)

	employee.ID = id
	employee.Region = nil
	require.NoError(t, s.Update(ctx, &employee))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.Nil(t, got.Region)
}

func TestUpdateNilEmployeeFails(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.ErrorIs(t, s.Update(context.Background(), nil), ErrInvalidArgument)
}

func TestRemoveExistingRow(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	employee := sampleEmployee()
	id, err := s.Add(ctx, &employee)
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, id))
	_, err = s.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveMissingIDIsNotAnError(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.NoError(t, s.Remove(context.Background(), 4242))
}

func TestAnnaSmithScenario(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	employee := Employee{
		LastName:        "Smith",
		FirstName:       "Anna",
		Title:           "Rep",
		TitleOfCourtesy: "Ms.",
		BirthDate:       time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		HireDate:        time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Address:         "1 Main St",
		City:            "Springfield",
		PostalCode:      "00000",
		Country:         "USA",
		HomePhone:       "555-0100",
		Extension:       "100",
		Notes:           "n/a",
		PhotoPath:       "p.jpg",
	}

	id, err := s.Add(ctx, &employee)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	employee.ID = id
	requireSameEmployee(t, employee, *got)
	require.Nil(t, got.Region)
	require.Nil(t, got.ReportsTo)
}

func TestStorageFailurePropagatesFromConnector(t *testing.T) {
	t.Parallel()

	s, err := New(SQLite{}, filepath.Join(t.TempDir(), "missing.db"))
	require.NoError(t, err)

	// The database file exists after Open, but the table does not.
	_, err = s.List(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestConcurrentReadsWhileWriteWithWAL(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	employee := sampleEmployee()
	id, err := s.Add(ctx, &employee)
	require.NoError(t, err)
	employee.ID = id

	const readers = 8
	errCh := make(chan error, readers+1)
	var wg sync.WaitGroup

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := s.List(ctx); err != nil {
					errCh <- err
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 25; i++ {
			employee.Extension = fmt.Sprintf("%d", 200+i)
			if err := s.Update(ctx, &employee); err != nil {
				errCh <- err
				return
			}
		}
	}()

	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}
}

func sampleEmployee() Employee {
	return Employee{
		LastName:        "Davolio",
		FirstName:       "Nancy",
		Title:           "Sales Representative",
		TitleOfCourtesy: "Ms.",
		BirthDate:       time.Date(1968, 12, 8, 0, 0, 0, 0, time.UTC),
		HireDate:        time.Date(1992, 5, 1, 0, 0, 0, 0, time.UTC),
		Address:         "507 20th Ave. E.",
		City:            "Seattle",
		PostalCode:      "98122",
		Country:         "USA",
		HomePhone:       "(206) 555-9857",
		Extension:       "5467",
		Notes:           "Education includes a BA in psychology.",
		PhotoPath:       "nancy.jpg",
	}
}

func requireSameEmployee(t *testing.T, want, got Employee) {
	t.Helper()

	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.LastName, got.LastName)
	require.Equal(t, want.FirstName, got.FirstName)
	require.Equal(t, want.Title, got.Title)
	require.Equal(t, want.TitleOfCourtesy, got.TitleOfCourtesy)
	require.True(t, want.BirthDate.Equal(got.BirthDate))
	require.True(t, want.HireDate.Equal(got.HireDate))
	require.Equal(t, want.Address, got.Address)
	require.Equal(t, want.City, got.City)
	require.Equal(t, want.Region, got.Region)
	require.Equal(t, want.PostalCode, got.PostalCode)
	require.Equal(t, want.Country, got.Country)
	require.Equal(t, want.HomePhone, got.HomePhone)
	require.Equal(t, want.Extension, got.Extension)
	require.Equal(t, want.Notes, got.Notes)
	require.Equal(t, want.ReportsTo, got.ReportsTo)
	require.Equal(t, want.PhotoPath, got.PhotoPath)
}

func newTestStore(t *testing.T) *EmployeeStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "employees.db")
	db, err := SQLite{}.Open(path)
	require.NoError(t, err)
	_, err = db.Exec(Schema)
	require.NoError(t, err)
	closeNoErr(t, db)

	s, err := New(SQLite{}, path)
	require.NoError(t, err)
	return s
}

func closeNoErr(t *testing.T, db *sql.DB) {
	t.Helper()
	require.NoError(t, db.Close())
}
