package catalog

// The catalog API returns far more than this. Only the fields the frontend
// renders are decoded; everything else is dropped so the upstream schema
// never leaks into our own responses.

type Image struct {
	URL    string `json:"url"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
	WebP   string `json:"webp,omitempty"`
	MP4    string `json:"mp4,omitempty"`
}

type Images struct {
	Original    Image `json:"original"`
	FixedHeight Image `json:"fixed_height"`
	FixedWidth  Image `json:"fixed_width"`
	PreviewGIF  Image `json:"preview_gif"`
}

type Gif struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Rating   string `json:"rating"`
	Username string `json:"username,omitempty"`
	Images   Images `json:"images"`
}

type Pagination struct {
	TotalCount int `json:"total_count"`
	Count      int `json:"count"`
	Offset     int `json:"offset"`
}

type Meta struct {
	Status     int    `json:"status"`
	Msg        string `json:"msg"`
	ResponseID string `json:"response_id,omitempty"`
}

// Page is a list response (search, trending).
type Page struct {
	Data       []Gif      `json:"data"`
	Pagination Pagination `json:"pagination"`
	Meta       Meta       `json:"meta"`
}

// Item is a single GIF response.
type Item struct {
	Data Gif  `json:"data"`
	Meta Meta `json:"meta"`
}

// errorBody covers both error shapes the catalog answers with.
type errorBody struct {
	Message string `json:"message"`
	Meta    Meta   `json:"meta"`
}
