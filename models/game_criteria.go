package models

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInvalidIDList signals a malformed comma-separated id list in a query.
var ErrInvalidIDList = errors.New("invalid id list")

// GameCriteria carries the user-supplied catalog filters. Zero values mean
// "no filter": every scope built from an absent field degrades to the
// identity predicate, so scopes can be chained in any order.
type GameCriteria struct {
	Page     int
	Size     int
	Sort     string // "field,asc" / "field,desc"
	Title    string
	IDs      []uint
	MaxPrice *decimal.Decimal

	TagIDs     []uint
	Genres     []string
	Platforms  []string
	Developers []string
	Publishers []string
}

// ParseIDs parses a comma-separated list of integer ids into a unique set.
// Empty input yields an empty set, which the id scopes treat as identity.
func ParseIDs(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	seen := make(map[uint]struct{})
	var ids []uint
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		v, err := strconv.ParseUint(token, 10, 64)
		if err != nil {
			return nil, ErrInvalidIDList
		}
		id := uint(v)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseNames splits a comma-separated list of names, dropping blanks.
func ParseNames(raw string) []string {
	var names []string
	for _, token := range strings.Split(raw, ",") {
		if token = strings.TrimSpace(token); token != "" {
			names = append(names, token)
		}
	}
	return names
}

// FuzzyPattern interleaves a LIKE wildcard after every character so that
// "halo" matches "Halo: The Master Chief Collection" style titles with
// arbitrary characters in between.
func FuzzyPattern(word string) string {
	if word == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		b.WriteRune(r)
		b.WriteByte('%')
	}
	return b.String()
}

// ByTitle matches titles containing the word case-insensitively. Blank input
// is identity.
func ByTitle(title string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if strings.TrimSpace(title) == "" {
			return db
		}
		return db.Where("LOWER(games.title) LIKE ?", "%"+FuzzyPattern(title))
	}
}

// ByMaxPrice keeps games priced at or below the ceiling. Nil is identity.
func ByMaxPrice(maxPrice *decimal.Decimal) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if maxPrice == nil {
			return db
		}
		return db.Where("games.price <= ?", *maxPrice)
	}
}

// ByIDs restricts to an explicit id set. Empty set is identity, never
// "match nothing".
func ByIDs(ids []uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(ids) == 0 {
			return db
		}
		return db.Where("games.id IN ?", ids)
	}
}

// ByTagIDs keeps games related to at least one of the given tag ids.
func ByTagIDs(ids []uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(ids) == 0 {
			return db
		}
		return db.Where("games.id IN (SELECT game_id FROM game_tags WHERE tag_id IN ?)", ids)
	}
}

// ByRelationNames keeps games joined to at least one related entity whose
// name is in the given set. joinTable must hold (game_id, <fkColumn>) rows
// and relTable the named entities.
func ByRelationNames(joinTable, fkColumn, relTable string, names []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(names) == 0 {
			return db
		}
		sub := "games.id IN (SELECT j.game_id FROM " + joinTable + " j" +
			" JOIN " + relTable + " r ON r.id = j." + fkColumn +
			" WHERE r.name IN ?)"
		return db.Where(sub, names)
	}
}

func ByGenres(names []string) func(*gorm.DB) *gorm.DB {
	return ByRelationNames("game_genres", "genre_id", "genres", names)
}

func ByPlatforms(names []string) func(*gorm.DB) *gorm.DB {
	return ByRelationNames("game_platforms", "platform_id", "platforms", names)
}

func ByDevelopers(names []string) func(*gorm.DB) *gorm.DB {
	return ByRelationNames("game_developers", "developer_id", "developers", names)
}

func ByPublishers(names []string) func(*gorm.DB) *gorm.DB {
	return ByRelationNames("game_publishers", "publisher_id", "publishers", names)
}

// ActiveOnly keeps storefront-visible games. Applied conditionally by the
// caller, not stored on the criteria.
func ActiveOnly() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("games.active = ?", true)
	}
}

// Scopes compiles the criteria's filters into one ordered scope list.
func (c GameCriteria) Scopes() []func(*gorm.DB) *gorm.DB {
	return []func(*gorm.DB) *gorm.DB{
		ByIDs(c.IDs),
		ByTitle(c.Title),
		ByMaxPrice(c.MaxPrice),
		ByTagIDs(c.TagIDs),
		ByGenres(c.Genres),
		ByPlatforms(c.Platforms),
		ByDevelopers(c.Developers),
		ByPublishers(c.Publishers),
	}
}

// sortableColumns whitelists sort fields against game columns.
var sortableColumns = map[string]string{
	"id":          "games.id",
	"title":       "games.title",
	"price":       "games.price",
	"releasedate": "games.release_date",
	"createdat":   "games.created_at",
}

// OrderClause translates a "field,direction" sort spec into an ORDER BY
// clause. No sort at all defaults to ascending by id; an explicit field with
// a missing or unknown direction sorts descending.
func OrderClause(sort string) string {
	sort = strings.TrimSpace(sort)
	if sort == "" {
		return "games.id ASC"
	}
	parts := strings.SplitN(sort, ",", 2)
	column, ok := sortableColumns[strings.ToLower(strings.TrimSpace(parts[0]))]
	if !ok {
		return "games.id ASC"
	}
	direction := "DESC"
	if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}

// Paginate applies 0-indexed offset paging.
func Paginate(page, size int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 0 {
			page = 0
		}
		if size <= 0 {
			size = 10
		}
		return db.Offset(page * size).Limit(size)
	}
}
