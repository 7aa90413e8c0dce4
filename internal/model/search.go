package model

// SearchStat counts how often a term was searched and remembers the
// movie that last matched it.
type SearchStat struct {
	Term       string
	Count      int64
	MovieID    MovieID
	MovieTitle string
	PosterPath string
}
