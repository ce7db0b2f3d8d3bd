package entity

// PageSnapshot is the page state captured when a wait fails.
type PageSnapshot struct {
	URL   string
	Title string
	HTML  string
}

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}
