package models

// Frame represents a frame style offered in the shop.
type Frame struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Material    string `json:"material"`
	Color       string `json:"color"` // CSS color or "transparent"
	BorderWidth int    `json:"borderWidth"`
	Popular     bool   `json:"popular"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// TransparentColor is the frame color used by frameless (acrylic) styles.
const TransparentColor = "transparent"

// IsTransparent reports whether the frame has no visible border color.
func (f Frame) IsTransparent() bool {
	return f.Color == TransparentColor
}

// DefaultMinPixels is the resolution floor used when a size does not carry one.
const DefaultMinPixels = 1200

// Size represents a print size and its base price in whole Rupees.
type Size struct {
	ID        string `json:"id"` // ratio, e.g. "12x16"
	Label     string `json:"label"`
	CM        string `json:"cm"`
	Price     int64  `json:"price"`
	MinPixels int    `json:"minPixels,omitempty"`
}

// MinResolution returns the longest-side pixel count a photo should reach
// to print well at this size.
func (s Size) MinResolution() int {
	if s.MinPixels > 0 {
		return s.MinPixels
	}
	return DefaultMinPixels
}

// NoMatID identifies the "no mat" choice.
const NoMatID = "none"

// MatOption represents a mat board choice. Price is added on top of the size price.
type MatOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
	Price int64  `json:"price"`
}

// NoMat is used whenever a line item is built without a mat selection.
var NoMat = MatOption{ID: NoMatID, Label: "No Mat", Price: 0}

// DeliveryZone is a named delivery region with a flat fee.
type DeliveryZone struct {
	Zone string `json:"zone"`
	Fee  int64  `json:"fee"`
	Days string `json:"days"`
}

// IsFree reports whether delivery into the zone costs nothing.
func (z DeliveryZone) IsFree() bool {
	return z.Fee == 0
}

type Testimonial struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
	Image    string `json:"image,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

type GalleryImage struct {
	ID      string `json:"id"`
	Image   string `json:"image"`
	Caption string `json:"caption"`
	FrameID string `json:"frameId,omitempty"`
}

type WallLayout struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Sizes []string `json:"sizes,omitempty"`
	Image string   `json:"image"`
}

type FAQ struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// Catalog is the full reference data set served by the shop.
type Catalog struct {
	Frames        []Frame        `json:"frames"`
	Sizes         []Size         `json:"sizes"`
	MatOptions    []MatOption    `json:"matOptions"`
	DeliveryZones []DeliveryZone `json:"deliveryZones"`
	Testimonials  []Testimonial  `json:"testimonials"`
	GalleryImages []GalleryImage `json:"galleryImages"`
	WallLayouts   []WallLayout   `json:"wallLayouts"`
	FAQs          []FAQ          `json:"faqs"`
}
