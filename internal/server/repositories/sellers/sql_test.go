package sellers

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/selleradmin/internal/dbx"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db, dbx.Postgres), mock, db
}

var summaryCols = []string{"account_no", "login_id", "status", "name_ko", "name_en", "version", "created_at"}

func TestList_FiltersAndPaging(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)^SELECT\s+COUNT\(\*\)\s+FROM\s+accounts\s+a.*WHERE\s+a\.role\s*=\s*'seller'\s+AND\s+a\.status\s*=\s*\$1\s+AND\s+a\.created_at\s*>=\s*\$2$`).
		WithArgs("active", from).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

	mock.ExpectQuery(`(?s)^SELECT\s+a\.account_no.*AND\s+a\.status\s*=\s*\$1\s+AND\s+a\.created_at\s*>=\s*\$2\s+ORDER\s+BY\s+a\.account_no\s+DESC\s+LIMIT\s+\$3\s+OFFSET\s+\$4$`).
		WithArgs("active", from, 10, 10).
		WillReturnRows(sqlmock.NewRows(summaryCols).
			AddRow(int64(2), "b", "active", "나", "B", int64(1), time.Now()).
			AddRow(int64(1), "a", "active", "가", "A", int64(3), time.Now()))

	page, err := repo.List(context.Background(), models.ListFilter{Status: models.StatusActive, CreatedFrom: from, Offset: 10})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if page.Total != 12 || len(page.Items) != 2 || page.Items[0].AccountNo != 2 || page.Items[1].Version != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestList_NameFilterEscapesWildcards(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`COUNT`).WithArgs(`%50\%\_OFF%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`LOWER\(p\.name_ko\)\s+LIKE\s+LOWER\(\$1\)`).WithArgs(`%50\%\_OFF%`, 10, 0).
		WillReturnRows(sqlmock.NewRows(summaryCols))

	page, err := repo.List(context.Background(), models.ListFilter{NameKo: "50%_OFF"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if page.Total != 0 || page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestList_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`COUNT`).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background(), models.ListFilter{})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestSearchByName_Query(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)AND\s+LOWER\(p\.name_ko\)\s+LIKE\s+LOWER\(\$1\)\s+ESCAPE.*WHEN\s+LOWER\(p\.name_ko\)\s*=\s*LOWER\(\$2\)\s+THEN\s+0.*LIKE\s+LOWER\(\$3\).*a\.account_no\s+ASC\s+LIMIT\s+\$4$`
	mock.ExpectQuery(q).WithArgs("%Shop%", "Shop", "Shop%", 10).
		WillReturnRows(sqlmock.NewRows(summaryCols).AddRow(int64(5), "s", "active", "Shop", "Shop", int64(1), time.Now()))

	got, err := repo.SearchByName(context.Background(), "Shop", 50)
	if err != nil {
		t.Fatalf("SearchByName error: %v", err)
	}
	if len(got) != 1 || got[0].AccountNo != 5 {
		t.Fatalf("unexpected result: %+v", got)
	}
}
