package remote

// Link is a HAL link object.
type Link struct {
	Href string `json:"href"`
}

// Page is the HAL envelope Horizon wraps list responses in.
type Page[T any] struct {
	Links struct {
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []T `json:"records"`
	} `json:"_embedded"`
}

// Records returns the embedded records, never nil.
func (p Page[T]) Records() []T {
	if p.Embedded.Records == nil {
		return []T{}
	}
	return p.Embedded.Records
}
