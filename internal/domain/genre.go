package domain

// Genre is the closed set of shelf categories. It is string-backed so the
// persisted collection stays human-readable, but callers should only ever
// construct values through the constants or ParseGenre.
type Genre string

const (
	GenreFiction    Genre = "Fiction"
	GenreNonFiction Genre = "Non-Fiction"
	GenreFantasy    Genre = "Fantasy"
	GenreSciFi      Genre = "Sci-Fi"
	GenreMystery    Genre = "Mystery"
	GenreRomance    Genre = "Romance"
	GenreBiography  Genre = "Biography"
	GenreSelfHelp   Genre = "Self-Help"
	GenreOther      Genre = "Other"
)

// Genres returns all genres in display order.
func Genres() []Genre {
	return []Genre{
		GenreFiction,
		GenreNonFiction,
		GenreFantasy,
		GenreSciFi,
		GenreMystery,
		GenreRomance,
		GenreBiography,
		GenreSelfHelp,
		GenreOther,
	}
}

// ParseGenre maps a stored string onto the closed set. Unknown values fall
// back to Other so a single odd record never poisons the whole collection.
func ParseGenre(s string) Genre {
	for _, g := range Genres() {
		if string(g) == s {
			return g
		}
	}
	return GenreOther
}

// Valid reports whether g is one of the known genres.
func (g Genre) Valid() bool {
	for _, known := range Genres() {
		if g == known {
			return true
		}
	}
	return false
}

func (g Genre) String() string { return string(g) }

// Next returns the genre after g in display order, wrapping around.
// Used by the TUI genre selector.
func (g Genre) Next() Genre {
	all := Genres()
	for i, known := range all {
		if g == known {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Prev returns the genre before g in display order, wrapping around.
func (g Genre) Prev() Genre {
	all := Genres()
	for i, known := range all {
		if g == known {
			return all[(i-1+len(all))%len(all)]
		}
	}
	return all[0]
}
