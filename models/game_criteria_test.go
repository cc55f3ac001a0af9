package models

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newDryRunDB builds a gorm handle that renders SQL without executing it, so
// scope composition can be asserted without a live database.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun: true,
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb
}

func renderSQL(db *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) (string, []interface{}) {
	var games []Game
	stmt := db.Model(&Game{}).Scopes(scopes...).Find(&games).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestParseIDs(t *testing.T) {
	ids, err := ParseIDs("1,2,3,2,1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 2, 3}, ids)
	assert.LessOrEqual(t, len(ids), 5)

	ids, err = ParseIDs("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = ParseIDs("  ")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ParseIDs("1,abc,3")
	assert.ErrorIs(t, err, ErrInvalidIDList)
}

func TestParseNames(t *testing.T) {
	assert.Equal(t, []string{"Action", "RPG"}, ParseNames(" Action , RPG ,"))
	assert.Nil(t, ParseNames(""))
}

func TestFuzzyPattern(t *testing.T) {
	assert.Equal(t, "h%a%l%o%", FuzzyPattern("Halo"))
	assert.Equal(t, "", FuzzyPattern(""))
}

func TestScopesDegradeToIdentity(t *testing.T) {
	db := newDryRunDB(t)

	sql, _ := renderSQL(db, GameCriteria{}.Scopes()...)
	assert.NotContains(t, sql, "WHERE", "empty criteria must compile to the identity predicate")
}

func TestByTitleScope(t *testing.T) {
	db := newDryRunDB(t)

	sql, vars := renderSQL(db, ByTitle("halo"))
	assert.Contains(t, sql, "LOWER(games.title) LIKE")
	assert.Contains(t, vars, "%h%a%l%o%")

	sql, _ = renderSQL(db, ByTitle("   "))
	assert.NotContains(t, sql, "WHERE")
}

func TestByMaxPriceScope(t *testing.T) {
	db := newDryRunDB(t)

	ceiling := decimal.NewFromInt(30)
	sql, _ := renderSQL(db, ByMaxPrice(&ceiling))
	assert.Contains(t, sql, "games.price <=")

	sql, _ = renderSQL(db, ByMaxPrice(nil))
	assert.NotContains(t, sql, "WHERE")
}

func TestIDSetScopes(t *testing.T) {
	db := newDryRunDB(t)

	sql, _ := renderSQL(db, ByIDs([]uint{1, 2}))
	assert.Contains(t, sql, "games.id IN")

	sql, _ = renderSQL(db, ByIDs(nil))
	assert.NotContains(t, sql, "WHERE")

	sql, _ = renderSQL(db, ByTagIDs([]uint{7}))
	assert.Contains(t, sql, "game_tags")

	sql, _ = renderSQL(db, ByGenres([]string{"Action"}))
	assert.Contains(t, sql, "game_genres")
	assert.Contains(t, sql, "genres")

	sql, _ = renderSQL(db, ByGenres(nil))
	assert.NotContains(t, sql, "WHERE")
}

func TestCompositionOrderIrrelevantForIdentity(t *testing.T) {
	db := newDryRunDB(t)

	// A present filter surrounded by absent ones renders the same WHERE as
	// the filter alone.
	alone, _ := renderSQL(db, ByTitle("gta"))
	composed, _ := renderSQL(db,
		ByIDs(nil), ByTitle("gta"), ByMaxPrice(nil), ByGenres(nil),
	)
	assert.Equal(t, alone, composed)
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "games.id ASC", OrderClause(""))
	assert.Equal(t, "games.price ASC", OrderClause("price,asc"))
	assert.Equal(t, "games.price ASC", OrderClause("price,ASC"))
	// missing or unknown direction sorts descending
	assert.Equal(t, "games.price DESC", OrderClause("price"))
	assert.Equal(t, "games.price DESC", OrderClause("price,sideways"))
	// unknown field falls back to the stable default
	assert.Equal(t, "games.id ASC", OrderClause("balance;DROP TABLE games,asc"))
}

func TestPaginateScope(t *testing.T) {
	db := newDryRunDB(t)

	var games []Game
	stmt := db.Model(&Game{}).Scopes(Paginate(2, 10)).Find(&games).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, "LIMIT")
	// page is 0-indexed: page 2 with size 10 skips 20 rows
	assert.Contains(t, stmt.Vars, 20)
}
