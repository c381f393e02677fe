package models

// GameCard is the catalog listing entry returned by GET /games.
type GameCard struct {
	ID         string   `json:"id"`
	Slug       string   `json:"slug"`
	Name       string   `json:"name"`
	Price      string   `json:"price"`
	ImageURL   string   `json:"image_url"`
	Rating     *float64 `json:"rating"`
	Platforms  []string `json:"platforms"`
	Genres     []string `json:"genres"`
	Released   string   `json:"released"`
	Metacritic *int     `json:"metacritic"`
}

// GameList is the paginated catalog response.
type GameList struct {
	Items []GameCard `json:"items"`
	Total int        `json:"total"`
	Skip  int        `json:"skip"`
	Limit int        `json:"limit"`
	Pages int        `json:"pages"`
}
