package model

type MovieID = int64

type Movie struct {
	ID               MovieID
	Title            string
	PosterPath       string
	VoteAverage      float64
	ReleaseDate      string
	OriginalLanguage string
}

type Genre struct {
	ID   int64
	Name string
}

type CastMember struct {
	ID          int64
	Name        string
	Character   string
	ProfilePath string
}

type CrewMember struct {
	ID         int64
	Name       string
	Job        string
	Department string
}

type Video struct {
	Key  string
	Name string
	Site string
	Type string
}

type MovieDetail struct {
	Movie

	BackdropPath    string
	Overview        string
	Runtime         int
	Status          string
	Genres          []Genre
	Cast            []CastMember
	Crew            []CrewMember
	Videos          []Video
	Recommendations []Movie
}

type SearchPage struct {
	Results    []Movie
	Page       int
	TotalPages int
}

// Interaction is one user's relation to one movie.
type Interaction struct {
	IsSaved bool
	Rating  int
}
