package models

import (
	"time"
)

// LineItemInput carries the snapshot fields of a framed-photo configuration
// before it is stored in a cart.
type LineItemInput struct {
	PhotoPreview string `json:"photoPreview"`
	PhotoName    string `json:"photoName"`
	FrameID      string `json:"frameId"`
	FrameName    string `json:"frameName"`
	FrameColor   string `json:"frameColor"`
	SizeID       string `json:"sizeId"`
	SizeName     string `json:"sizeName"`
	Price        int64  `json:"price"`
	MatID        string `json:"matId"`
	MatName      string `json:"matName"`
	MatPrice     int64  `json:"matPrice"`
}

// CartLineItem is one cart entry. Everything except CartID and AddedAt is a
// copy of catalog data taken when the item was created.
type CartLineItem struct {
	CartID string `json:"cartId"`
	LineItemInput
	AddedAt time.Time `json:"addedAt"`
}

// LineTotal returns the price of the line including its mat.
func (i CartLineItem) LineTotal() int64 {
	return i.Price + i.MatPrice
}

// LineItemUpdate is a partial update of a cart line. Nil fields are left as they are.
type LineItemUpdate struct {
	PhotoPreview *string `json:"photoPreview,omitempty"`
	PhotoName    *string `json:"photoName,omitempty"`
	FrameID      *string `json:"frameId,omitempty"`
	FrameName    *string `json:"frameName,omitempty"`
	FrameColor   *string `json:"frameColor,omitempty"`
	SizeID       *string `json:"sizeId,omitempty"`
	SizeName     *string `json:"sizeName,omitempty"`
	Price        *int64  `json:"price,omitempty"`
	MatID        *string `json:"matId,omitempty"`
	MatName      *string `json:"matName,omitempty"`
	MatPrice     *int64  `json:"matPrice,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u LineItemUpdate) IsEmpty() bool {
	return u == LineItemUpdate{}
}

// Apply merges the set fields of u into item.
func (u LineItemUpdate) Apply(item *CartLineItem) {
	setString(&item.PhotoPreview, u.PhotoPreview)
	setString(&item.PhotoName, u.PhotoName)
	setString(&item.FrameID, u.FrameID)
	setString(&item.FrameName, u.FrameName)
	setString(&item.FrameColor, u.FrameColor)
	setString(&item.SizeID, u.SizeID)
	setString(&item.SizeName, u.SizeName)
	setString(&item.MatID, u.MatID)
	setString(&item.MatName, u.MatName)
	if u.Price != nil {
		item.Price = *u.Price
	}
	if u.MatPrice != nil {
		item.MatPrice = *u.MatPrice
	}
}

// SizeUpdate returns an update that swaps the size snapshot of a line.
func SizeUpdate(s Size) LineItemUpdate {
	return LineItemUpdate{SizeID: &s.ID, SizeName: &s.Label, Price: &s.Price}
}

// MatUpdate returns an update that swaps the mat snapshot of a line.
func MatUpdate(m MatOption) LineItemUpdate {
	return LineItemUpdate{MatID: &m.ID, MatName: &m.Label, MatPrice: &m.Price}
}

// Merge combines two updates; fields set in o win.
func (u LineItemUpdate) Merge(o LineItemUpdate) LineItemUpdate {
	merged := u
	pick(&merged.PhotoPreview, o.PhotoPreview)
	pick(&merged.PhotoName, o.PhotoName)
	pick(&merged.FrameID, o.FrameID)
	pick(&merged.FrameName, o.FrameName)
	pick(&merged.FrameColor, o.FrameColor)
	pick(&merged.SizeID, o.SizeID)
	pick(&merged.SizeName, o.SizeName)
	pick(&merged.Price, o.Price)
	pick(&merged.MatID, o.MatID)
	pick(&merged.MatName, o.MatName)
	pick(&merged.MatPrice, o.MatPrice)
	return merged
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

// CartView is the read model of a cart returned to clients.
type CartView struct {
	Items          []CartLineItem `json:"items"`
	IsOpen         bool           `json:"isOpen"`
	TotalItems     int            `json:"totalItems"`
	TotalPrice     int64          `json:"totalPrice"`
	FormattedTotal string         `json:"formattedTotal"`
}
