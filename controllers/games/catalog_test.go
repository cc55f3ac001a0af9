package games

import (
	"errors"
	"net/url"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/SEM24/GRID-Ecommerce-Backend/database"
	"github.com/SEM24/GRID-Ecommerce-Backend/models"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB swaps the global handle for a sqlmock-backed one for the duration
// of the test.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("opening sqlmock: %v", err)
	}
	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("opening gorm: %v", err)
	}
	prev := database.DB
	database.DB = gdb
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})
	return mock
}

func TestCriteriaFromQuery_Defaults(t *testing.T) {
	criteria, err := CriteriaFromQuery(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if criteria.Page != 0 {
		t.Errorf("default page = %d, want 0", criteria.Page)
	}
	if criteria.Size != defaultPageSize {
		t.Errorf("default size = %d, want %d", criteria.Size, defaultPageSize)
	}
	if criteria.MaxPrice != nil {
		t.Error("maxPrice should be unset by default")
	}
}

func TestCriteriaFromQuery_Parsing(t *testing.T) {
	q := url.Values{}
	q.Set("page", "2")
	q.Set("size", "500")
	q.Set("sort", "price,asc")
	q.Set("title", " halo ")
	q.Set("id", "3,1,3")
	q.Set("tags", "7")
	q.Set("maxPrice", "59.99")
	q.Set("genres", "Action, RPG")

	criteria, err := CriteriaFromQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if criteria.Page != 2 {
		t.Errorf("page = %d, want 2", criteria.Page)
	}
	if criteria.Size != maxPageSize {
		t.Errorf("size must be capped at %d, got %d", maxPageSize, criteria.Size)
	}
	if criteria.Sort != "price,asc" {
		t.Errorf("sort = %q", criteria.Sort)
	}
	if criteria.Title != "halo" {
		t.Errorf("title = %q, want trimmed", criteria.Title)
	}
	if len(criteria.IDs) != 2 {
		t.Errorf("ids = %v, want deduplicated pair", criteria.IDs)
	}
	if len(criteria.TagIDs) != 1 || criteria.TagIDs[0] != 7 {
		t.Errorf("tagIDs = %v, want [7]", criteria.TagIDs)
	}
	if criteria.MaxPrice == nil || criteria.MaxPrice.String() != "59.99" {
		t.Errorf("maxPrice = %v, want 59.99", criteria.MaxPrice)
	}
	if len(criteria.Genres) != 2 {
		t.Errorf("genres = %v, want two entries", criteria.Genres)
	}
}

func TestCriteriaFromQuery_MalformedIDs(t *testing.T) {
	q := url.Values{}
	q.Set("id", "1,nope")

	_, err := CriteriaFromQuery(q)
	if !errors.Is(err, models.ErrInvalidIDList) {
		t.Errorf("err = %v, want ErrInvalidIDList", err)
	}
}

func TestCriteriaFromQuery_IgnoresNegativePrice(t *testing.T) {
	q := url.Values{}
	q.Set("maxPrice", "-5")

	criteria, err := CriteriaFromQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if criteria.MaxPrice != nil {
		t.Errorf("negative maxPrice must be ignored, got %v", criteria.MaxPrice)
	}
}

func TestSearchGames_EmptyPageIsError(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `games`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT \\* FROM `games`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := SearchGames(models.GameCriteria{Size: defaultPageSize}, true, 0)
	if !errors.Is(err, ErrNoGames) {
		t.Fatalf("err = %v, want ErrNoGames", err)
	}
	// No max-price aggregate or projection queries once the page is empty.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		items int64
		size  int
		want  int
	}{
		{25, 12, 2},  // three pages, reported as last page index
		{24, 12, 1},
		{12, 12, 0},
		{1, 12, 0},
	}
	for _, tc := range cases {
		if got := totalPages(tc.items, tc.size); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.items, tc.size, got, tc.want)
		}
	}
}
