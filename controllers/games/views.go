package games

import (
	"github.com/SEM24/GRID-Ecommerce-Backend/models"
	"github.com/shopspring/decimal"
)

// The storefront renders three reduced game views. Each is annotated with
// whether the current user already owns the game.

type ShortGameModel struct {
	ID                 uint            `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	CoverImageURL      string          `json:"coverImageUrl"`
	OwnedByCurrentUser bool            `json:"ownedByCurrentUser"`
}

type GenreLimitedGameModel struct {
	ID                 uint            `json:"id"`
	Title              string          `json:"title"`
	Price              decimal.Decimal `json:"price"`
	CoverImageURL      string          `json:"coverImageUrl"`
	Genres             []string        `json:"genres"`
	OwnedByCurrentUser bool            `json:"ownedByCurrentUser"`
}

type PopularGameModel struct {
	ID                 uint            `json:"id"`
	Title              string          `json:"title"`
	Price              decimal.Decimal `json:"price"`
	CoverImageURL      string          `json:"coverImageUrl"`
	OwnedByCurrentUser bool            `json:"ownedByCurrentUser"`
}

func toShortGame(game models.Game, owned bool) ShortGameModel {
	return ShortGameModel{
		ID:                 game.ID,
		Title:              game.Title,
		Description:        game.Description,
		Price:              game.Price,
		CoverImageURL:      game.CoverImageURL,
		OwnedByCurrentUser: owned,
	}
}

func toPopularGame(game models.Game, owned bool) PopularGameModel {
	return PopularGameModel{
		ID:                 game.ID,
		Title:              game.Title,
		Price:              game.Price,
		CoverImageURL:      game.CoverImageURL,
		OwnedByCurrentUser: owned,
	}
}

// limitGenres caps a game's displayed genres at two. When a game carries
// more, the excluded genre is dropped first; if more than two still remain
// the game is filtered out of the listing entirely rather than truncated.
func limitGenres(genres []models.Genre, excluded string) ([]string, bool) {
	kept := make([]string, 0, len(genres))
	if len(genres) > 2 {
		for _, genre := range genres {
			if genre.Name == excluded {
				continue
			}
			kept = append(kept, genre.Name)
		}
	} else {
		for _, genre := range genres {
			kept = append(kept, genre.Name)
		}
	}
	if len(kept) > 2 {
		return nil, false
	}
	return kept, true
}

// toGenreLimitedGame projects the game with the genre cap applied. The
// second return value is false when the game should be dropped from the
// result set.
func toGenreLimitedGame(game models.Game, excludedGenre string, owned bool) (GenreLimitedGameModel, bool) {
	genres, ok := limitGenres(game.Genres, excludedGenre)
	if !ok {
		return GenreLimitedGameModel{}, false
	}
	return GenreLimitedGameModel{
		ID:                 game.ID,
		Title:              game.Title,
		Price:              game.Price,
		CoverImageURL:      game.CoverImageURL,
		Genres:             genres,
		OwnedByCurrentUser: owned,
	}, true
}
