package albums

// ListQuery is GET /albumes?nombre=&artista=. Both filters are optional
// substring matches.
type ListQuery struct {
	Name   string `form:"nombre"`
	Artist string `form:"artista"`
}
