package checkout

import (
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/SEM24/GRID-Ecommerce-Backend/database"
	"github.com/SEM24/GRID-Ecommerce-Backend/models"
	"github.com/shopspring/decimal"
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

func cartOf(prices ...string) []models.CartItem {
	items := make([]models.CartItem, 0, len(prices))
	for i, p := range prices {
		items = append(items, models.CartItem{
			GameID: uint(i + 1),
			Game:   &models.Game{ID: uint(i + 1), Price: decimal.RequireFromString(p)},
		})
	}
	return items
}

func TestTotalForBill_NoBalanceAction(t *testing.T) {
	total, err := TotalForBill(models.BalanceNone, cartOf("19.99", "29.99"), decimal.RequireFromString("1000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("49.98")) {
		t.Errorf("total = %s, want 49.98", total)
	}
}

func TestTotalForBill_BalancePaymentRemainder(t *testing.T) {
	total, err := TotalForBill(models.BalancePayment, cartOf("60", "40"), decimal.RequireFromString("40"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("60")) {
		t.Errorf("remainder = %s, want 60", total)
	}
}

func TestTotalForBill_BalanceCoversTotal(t *testing.T) {
	_, err := TotalForBill(models.BalancePayment, cartOf("100"), decimal.RequireFromString("100"))
	if !errors.Is(err, ErrBalanceCoversTotal) {
		t.Errorf("err = %v, want ErrBalanceCoversTotal", err)
	}

	_, err = TotalForBill(models.BalancePayment, cartOf("100"), decimal.RequireFromString("150"))
	if !errors.Is(err, ErrBalanceCoversTotal) {
		t.Errorf("err = %v, want ErrBalanceCoversTotal", err)
	}
}

func TestCompleteTransaction_AlreadyPaidIsRejected(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"transaction_id", "user_id", "paid"}).
			AddRow("sess-1", 1, true))
	mock.ExpectQuery("SELECT \\* FROM `transaction_games`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := CompleteTransaction("sess-1")
	if !errors.Is(err, models.ErrTransactionPaid) {
		t.Fatalf("err = %v, want ErrTransactionPaid", err)
	}
	// The user row is never read or updated: paid is terminal, the balance
	// effect must not be applied a second time.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTotalForBill_SkipsDanglingItems(t *testing.T) {
	items := cartOf("10")
	items = append(items, models.CartItem{GameID: 99, Game: nil})

	total, err := TotalForBill(models.BalanceNone, items, decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("10")) {
		t.Errorf("total = %s, want 10", total)
	}
}
