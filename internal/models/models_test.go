package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rs. 0"},
		{150, "Rs. 150"},
		{4500, "Rs. 4,500"},
		{4650, "Rs. 4,650"},
		{1250000, "Rs. 1,250,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.amount))
	}
}

func TestLineItemUpdateApply(t *testing.T) {
	item := CartLineItem{
		CartID: "a",
		LineItemInput: LineItemInput{
			FrameID: "classic-black", SizeID: "8x8", SizeName: "8×8", Price: 1500,
			MatID: NoMatID, MatName: "No Mat",
		},
	}

	upd := SizeUpdate(Size{ID: "12x16", Label: "12×16", Price: 3500}).Merge(MatUpdate(MatOption{ID: "white", Label: "White Mat", Price: 300}))
	upd.Apply(&item)

	assert.Equal(t, "a", item.CartID)
	assert.Equal(t, "classic-black", item.FrameID)
	assert.Equal(t, "12x16", item.SizeID)
	assert.Equal(t, int64(3500), item.Price)
	assert.Equal(t, "white", item.MatID)
	assert.Equal(t, int64(300), item.MatPrice)
	assert.Equal(t, int64(3800), item.LineTotal())
}

func TestLineItemUpdateEmpty(t *testing.T) {
	assert.True(t, LineItemUpdate{}.IsEmpty())
	name := "x"
	assert.False(t, LineItemUpdate{PhotoName: &name}.IsEmpty())
}

func TestCheckResolution(t *testing.T) {
	size := Size{ID: "16x20", MinPixels: 2400}

	assert.True(t, CheckResolution(2400, 1000, size).OK)
	assert.True(t, CheckResolution(1000, 3000, size).OK)

	check := CheckResolution(2000, 1500, size)
	assert.False(t, check.OK)
	assert.Equal(t, 2400, check.MinRequired)

	assert.Equal(t, DefaultMinPixels, CheckResolution(10, 10, Size{ID: "odd"}).MinRequired)
}

func TestDefaultOrderForm(t *testing.T) {
	form := DefaultOrderForm()
	assert.Equal(t, "Kathmandu", form.City)
	assert.Equal(t, "Kathmandu Valley", form.Zone)
	assert.Equal(t, PaymentKhalti, form.PaymentMethod)
}

func TestPaymentMethodValid(t *testing.T) {
	for _, o := range PaymentMethods {
		assert.True(t, o.ID.Valid(), o.ID)
	}
	assert.False(t, PaymentMethod("paypal").Valid())
	assert.False(t, PaymentMethod("").Valid())
}
