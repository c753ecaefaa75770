package artists

// ListQuery is GET /artistas?nombre=.
type ListQuery struct {
	Name string `form:"nombre"`
}
