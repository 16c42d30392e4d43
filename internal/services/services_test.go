package services

import (
	"context"
	"errors"
	"sync"

	"framestudio/internal/models"
)

type zoneMap map[string]int64

func (z zoneMap) GetDeliveryZone(name string) (*models.DeliveryZone, bool) {
	fee, ok := z[name]
	if !ok {
		return nil, false
	}
	return &models.DeliveryZone{Zone: name, Fee: fee, Days: name + " days"}, true
}

var testZones = zoneMap{
	"Kathmandu Valley": 0,
	"Pokhara":          150,
	"Other Cities":     200,
}

type frameMap map[string]models.Frame

func (f frameMap) GetFrameByID(id string) (*models.Frame, error) {
	fr, ok := f[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &fr, nil
}

var testFrames = frameMap{
	"classic-black": {ID: "classic-black", Name: "Classic Black", Material: "Premium Wood", Color: "#1a1a1a", BorderWidth: 12},
	"natural-oak":   {ID: "natural-oak", Name: "Natural Oak", Material: "Solid Oak Wood", Color: "#c8a165", BorderWidth: 14},
}

var (
	size8x12  = models.Size{ID: "8x12", Label: "8×12", Price: 2000, MinPixels: 1200}
	size12x16 = models.Size{ID: "12x16", Label: "12×16", Price: 3500, MinPixels: 1800}
	size16x20 = models.Size{ID: "16x20", Label: "16×20", Price: 4500, MinPixels: 2400}
	whiteMat  = models.MatOption{ID: "white", Label: "White Mat", Price: 300}
)

func lineItem(size models.Size, mat models.MatOption) models.LineItemInput {
	return models.LineItemInput{
		PhotoName: "family.jpg",
		FrameID:   "classic-black",
		FrameName: "Classic Black",
		SizeID:    size.ID,
		SizeName:  size.Label,
		Price:     size.Price,
		MatID:     mat.ID,
		MatName:   mat.Label,
		MatPrice:  mat.Price,
	}
}

func validForm(zone string) models.OrderForm {
	f := models.DefaultOrderForm()
	f.Name = "Sita Sharma"
	f.Phone = "9800000000"
	f.Address = "Lazimpat"
	f.Zone = zone
	return f
}

type recordingNotifier struct {
	mu     sync.Mutex
	orders []string
	done   chan struct{}
	err    error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 8)}
}

func (n *recordingNotifier) SendOrderConfirmation(_ context.Context, c *models.Confirmation) error {
	n.mu.Lock()
	n.orders = append(n.orders, c.OrderNumber)
	n.mu.Unlock()
	n.done <- struct{}{}
	return n.err
}
