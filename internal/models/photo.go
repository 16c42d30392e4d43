package models

// Photo is a customer upload held in memory for the duration of a session.
type Photo struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Preview     string `json:"preview,omitempty"` // data URI
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// HasDimensions reports whether the image dimensions could be decoded.
func (p Photo) HasDimensions() bool {
	return p.Width > 0 && p.Height > 0
}

// ResolutionCheck compares a photo against the minimum resolution of a size.
type ResolutionCheck struct {
	OK          bool `json:"ok"`
	Width       int  `json:"width"`
	Height      int  `json:"height"`
	MinRequired int  `json:"minRequired"`
}

// CheckResolution passes when either side of the photo reaches the minimum
// pixel count for the size.
func CheckResolution(width, height int, size Size) ResolutionCheck {
	min := size.MinResolution()
	return ResolutionCheck{
		OK:          width >= min || height >= min,
		Width:       width,
		Height:      height,
		MinRequired: min,
	}
}
