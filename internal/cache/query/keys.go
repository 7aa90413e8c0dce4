package cache_query

import "strconv"

// Logical resource keys shared between the session store and the
// usecases that invalidate them.

func AuthUserKey(sid string) Key {
	return BuildKey("auth", "user", sid)
}

func SavedMoviesKey(userID int64) Key {
	return BuildKey("savedMovies", strconv.FormatInt(userID, 10))
}

func MovieDetailKey(movieID int64) Key {
	return BuildKey("movie", strconv.FormatInt(movieID, 10))
}

func SearchKey(query string, page int) Key {
	return BuildKey("search", query, strconv.Itoa(page))
}

func TrendingKey() Key {
	return BuildKey("trending")
}
