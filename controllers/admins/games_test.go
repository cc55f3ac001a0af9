package admins

import (
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/SEM24/GRID-Ecommerce-Backend/database"
	"github.com/gorilla/mux"
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

func TestCoverObjectName(t *testing.T) {
	t.Setenv("R2_PUBLIC_BASE_URL", "https://cdn.example")

	if got := coverObjectName("https://cdn.example/covers/7.png"); got != "covers/7.png" {
		t.Errorf("key = %q, want covers/7.png", got)
	}
	if got := coverObjectName("https://elsewhere.example/covers/7.png"); got != "" {
		t.Errorf("foreign URL must yield no key, got %q", got)
	}
	if got := coverObjectName(""); got != "" {
		t.Errorf("empty URL must yield no key, got %q", got)
	}

	t.Setenv("R2_PUBLIC_BASE_URL", "")
	if got := coverObjectName("https://cdn.example/covers/7.png"); got != "" {
		t.Errorf("unconfigured base must yield no key, got %q", got)
	}
}

func TestDeleteGameHandler_RemovesGameAndJoinRows(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `games`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "cover_image_url"}).AddRow(7, ""))
	mock.ExpectBegin()
	for _, table := range []string{
		"game_genres", "game_platforms", "game_developers",
		"game_publishers", "game_tags", "cart_items",
	} {
		mock.ExpectExec("DELETE FROM " + table + " WHERE game_id = ").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec("DELETE FROM `games`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodDelete, "http://example.local/api/admin/games/7", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()

	DeleteGameHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteGameHandler_MissingGame(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `games`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest(http.MethodDelete, "http://example.local/api/admin/games/9", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "9"})
	rec := httptest.NewRecorder()

	DeleteGameHandler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
