package catalog

// Row binds a translated title key to one endpoint.
type Row struct {
	Key      string
	TitleKey string
	Endpoint Endpoint
}

// Page is a static composition of rows.
type Page struct {
	Name     string
	TitleKey string
	Rows     []Row
}

var pages = []Page{
	{
		Name:     "home",
		TitleKey: "page.home",
		Rows: []Row{
			{Key: "trending_movies", TitleKey: "row.trending_movies", Endpoint: MustParse("trending/movie/week")},
			{Key: "trending_tv", TitleKey: "row.trending_tv", Endpoint: MustParse("trending/tv/week")},
			{Key: "popular_movies", TitleKey: "row.popular_movies", Endpoint: MustParse("movie/popular")},
			{Key: "top_rated_movies", TitleKey: "row.top_rated_movies", Endpoint: MustParse("movie/top_rated")},
		},
	},
	{
		Name:     "movies",
		TitleKey: "page.movies",
		Rows: []Row{
			{Key: "now_playing", TitleKey: "row.now_playing", Endpoint: MustParse("movie/now_playing")},
			{Key: "popular_movies", TitleKey: "row.popular_movies", Endpoint: MustParse("movie/popular")},
			{Key: "top_rated_movies", TitleKey: "row.top_rated_movies", Endpoint: MustParse("movie/top_rated")},
			{Key: "upcoming", TitleKey: "row.upcoming", Endpoint: MustParse("movie/upcoming")},
		},
	},
	{
		Name:     "tv",
		TitleKey: "page.tv",
		Rows: []Row{
			{Key: "popular_tv", TitleKey: "row.popular_tv", Endpoint: MustParse("tv/popular")},
			{Key: "top_rated_tv", TitleKey: "row.top_rated_tv", Endpoint: MustParse("tv/top_rated")},
			{Key: "on_the_air", TitleKey: "row.on_the_air", Endpoint: MustParse("tv/on_the_air")},
			{Key: "airing_today", TitleKey: "row.airing_today", Endpoint: MustParse("tv/airing_today")},
		},
	},
}

// Pages returns the page compositions in navigation order.
func Pages() []Page {
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

// PageByName looks up a page.
func PageByName(name string) (Page, bool) {
	for _, p := range pages {
		if p.Name == name {
			return p, true
		}
	}
	return Page{}, false
}
