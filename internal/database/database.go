// Package database serves the shop's read-only reference data.
//
// The catalog is a single JSON document. A copy ships inside the binary and
// an external file can replace it at start-up or through Reload.
package database

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"framestudio/internal/models"
)

//go:embed catalog.json
var defaultCatalog []byte

// ErrNotFound is returned when an id does not match any catalog entry.
var ErrNotFound = errors.New("catalog entry not found")

// AllMaterials is the pseudo-material that disables the frame filter.
const AllMaterials = "All"

// JSONCatalog holds the catalog in memory. Readers always receive copies.
type JSONCatalog struct {
	mu       sync.RWMutex
	data     models.Catalog
	filePath string
}

// NewCatalog loads the catalog from filePath, or the embedded catalog when
// filePath is empty.
func NewCatalog(filePath string) (*JSONCatalog, error) {
	db := &JSONCatalog{filePath: filePath}
	if err := db.Reload(); err != nil {
		return nil, err
	}
	return db, nil
}

// NewCatalogFromData builds a catalog from an in-memory value.
func NewCatalogFromData(data models.Catalog) (*JSONCatalog, error) {
	if err := validate(&data); err != nil {
		return nil, err
	}
	return &JSONCatalog{data: data}, nil
}

// Reload re-reads the catalog source and swaps it in atomically.
func (db *JSONCatalog) Reload() error {
	raw := defaultCatalog
	if db.filePath != "" {
		fileData, err := os.ReadFile(db.filePath)
		if err != nil {
			return fmt.Errorf("read catalog %s: %w", db.filePath, err)
		}
		raw = fileData
	}

	data, err := parse(raw)
	if err != nil {
		return err
	}

	db.mu.Lock()
	db.data = data
	db.mu.Unlock()
	return nil
}

func parse(raw []byte) (models.Catalog, error) {
	var data models.Catalog
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validate(&data); err != nil {
		return models.Catalog{}, err
	}
	return data, nil
}

// validate rejects catalogs that would break cart arithmetic or lookups.
func validate(data *models.Catalog) error {
	frameIDs := map[string]bool{}
	for _, f := range data.Frames {
		if f.ID == "" {
			return errors.New("catalog: frame without id")
		}
		if frameIDs[f.ID] {
			return fmt.Errorf("catalog: duplicate frame id %q", f.ID)
		}
		if f.BorderWidth <= 0 {
			return fmt.Errorf("catalog: frame %q has non-positive border width", f.ID)
		}
		frameIDs[f.ID] = true
	}
	for _, s := range data.Sizes {
		if s.Price < 0 {
			return fmt.Errorf("catalog: size %q has negative price", s.ID)
		}
	}
	for _, m := range data.MatOptions {
		if m.Price < 0 {
			return fmt.Errorf("catalog: mat %q has negative price", m.ID)
		}
	}
	zones := map[string]bool{}
	for _, z := range data.DeliveryZones {
		if zones[z.Zone] {
			return fmt.Errorf("catalog: duplicate delivery zone %q", z.Zone)
		}
		if z.Fee < 0 {
			return fmt.Errorf("catalog: zone %q has negative fee", z.Zone)
		}
		zones[z.Zone] = true
	}
	return nil
}

// GetFrames returns every frame in catalog order.
func (db *JSONCatalog) GetFrames() []models.Frame {
	db.mu.RLock()
	defer db.mu.RUnlock()
	frames := make([]models.Frame, len(db.data.Frames))
	copy(frames, db.data.Frames)
	return frames
}

// GetFramesByMaterial filters frames by material. "All" or "" returns everything.
func (db *JSONCatalog) GetFramesByMaterial(material string) []models.Frame {
	if material == "" || material == AllMaterials {
		return db.GetFrames()
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	frames := []models.Frame{}
	for _, f := range db.data.Frames {
		if strings.EqualFold(f.Material, material) {
			frames = append(frames, f)
		}
	}
	return frames
}

// GetPopularFrames returns frames flagged as popular.
func (db *JSONCatalog) GetPopularFrames() []models.Frame {
	db.mu.RLock()
	defer db.mu.RUnlock()
	frames := []models.Frame{}
	for _, f := range db.data.Frames {
		if f.Popular {
			frames = append(frames, f)
		}
	}
	return frames
}

// GetMaterials lists distinct frame materials, "All" first and the rest sorted.
func (db *JSONCatalog) GetMaterials() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	seen := map[string]bool{}
	materials := []string{}
	for _, f := range db.data.Frames {
		if !seen[f.Material] {
			seen[f.Material] = true
			materials = append(materials, f.Material)
		}
	}
	sort.Strings(materials)
	return append([]string{AllMaterials}, materials...)
}

// GetFrameByID returns the frame with the given id.
func (db *JSONCatalog) GetFrameByID(id string) (*models.Frame, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, f := range db.data.Frames {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, fmt.Errorf("frame %q: %w", id, ErrNotFound)
}

func (db *JSONCatalog) GetSizes() []models.Size {
	db.mu.RLock()
	defer db.mu.RUnlock()
	sizes := make([]models.Size, len(db.data.Sizes))
	copy(sizes, db.data.Sizes)
	return sizes
}

func (db *JSONCatalog) GetSizeByID(id string) (*models.Size, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, s := range db.data.Sizes {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("size %q: %w", id, ErrNotFound)
}

func (db *JSONCatalog) GetMatOptions() []models.MatOption {
	db.mu.RLock()
	defer db.mu.RUnlock()
	mats := make([]models.MatOption, len(db.data.MatOptions))
	copy(mats, db.data.MatOptions)
	return mats
}

// GetMatOptionByID returns the mat with the given id. The "none" id always
// resolves, even when the catalog does not list it.
func (db *JSONCatalog) GetMatOptionByID(id string) (*models.MatOption, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, m := range db.data.MatOptions {
		if m.ID == id {
			return &m, nil
		}
	}
	if id == models.NoMatID {
		m := models.NoMat
		return &m, nil
	}
	return nil, fmt.Errorf("mat %q: %w", id, ErrNotFound)
}

func (db *JSONCatalog) GetDeliveryZones() []models.DeliveryZone {
	db.mu.RLock()
	defer db.mu.RUnlock()
	zones := make([]models.DeliveryZone, len(db.data.DeliveryZones))
	copy(zones, db.data.DeliveryZones)
	return zones
}

// GetDeliveryZone looks a zone up by its exact name.
func (db *JSONCatalog) GetDeliveryZone(name string) (*models.DeliveryZone, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, z := range db.data.DeliveryZones {
		if z.Zone == name {
			return &z, true
		}
	}
	return nil, false
}

func (db *JSONCatalog) GetTestimonials() []models.Testimonial {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]models.Testimonial, len(db.data.Testimonials))
	copy(out, db.data.Testimonials)
	return out
}

func (db *JSONCatalog) GetGalleryImages() []models.GalleryImage {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]models.GalleryImage, len(db.data.GalleryImages))
	copy(out, db.data.GalleryImages)
	return out
}

func (db *JSONCatalog) GetWallLayouts() []models.WallLayout {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]models.WallLayout, len(db.data.WallLayouts))
	for i, l := range db.data.WallLayouts {
		l.Sizes = append([]string(nil), l.Sizes...)
		out[i] = l
	}
	return out
}

func (db *JSONCatalog) GetFAQs() []models.FAQ {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]models.FAQ, len(db.data.FAQs))
	copy(out, db.data.FAQs)
	return out
}
