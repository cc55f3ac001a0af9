package games

import (
	"reflect"
	"testing"

	"github.com/SEM24/GRID-Ecommerce-Backend/models"
)

func genresOf(names ...string) []models.Genre {
	genres := make([]models.Genre, 0, len(names))
	for i, n := range names {
		genres = append(genres, models.Genre{ID: uint(i + 1), Name: n})
	}
	return genres
}

func TestLimitGenres(t *testing.T) {
	cases := []struct {
		name     string
		genres   []models.Genre
		excluded string
		want     []string
		included bool
	}{
		{
			name:     "two genres pass through untouched",
			genres:   genresOf("Action", "RPG"),
			excluded: "Action",
			want:     []string{"Action", "RPG"},
			included: true,
		},
		{
			name:     "dropping the excluded genre brings it under the cap",
			genres:   genresOf("Action", "RPG", "Indie"),
			excluded: "Action",
			want:     []string{"RPG", "Indie"},
			included: true,
		},
		{
			name:     "still over the cap after dropping, game is filtered out",
			genres:   genresOf("Action", "RPG", "Indie", "Strategy"),
			excluded: "Action",
			included: false,
		},
		{
			name:     "three genres and no match to drop, game is filtered out",
			genres:   genresOf("Action", "RPG", "Indie"),
			excluded: "Horror",
			included: false,
		},
		{
			name:     "no genres",
			genres:   nil,
			excluded: "Action",
			want:     []string{},
			included: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, included := limitGenres(tc.genres, tc.excluded)
			if included != tc.included {
				t.Fatalf("included = %v, want %v", included, tc.included)
			}
			if included && !reflect.DeepEqual(got, tc.want) {
				t.Errorf("genres = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestToGenreLimitedGame(t *testing.T) {
	game := models.Game{ID: 7, Title: "Starfall", Genres: genresOf("Action", "RPG", "Indie")}

	view, ok := toGenreLimitedGame(game, "Action", true)
	if !ok {
		t.Fatal("game should survive the genre cap")
	}
	if view.ID != 7 || view.Title != "Starfall" || !view.OwnedByCurrentUser {
		t.Errorf("unexpected projection: %+v", view)
	}
	if !reflect.DeepEqual(view.Genres, []string{"RPG", "Indie"}) {
		t.Errorf("genres = %v, want [RPG Indie]", view.Genres)
	}

	if _, ok := toGenreLimitedGame(game, "Horror", false); ok {
		t.Error("game over the cap must be dropped")
	}
}
