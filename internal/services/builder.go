package services

import (
	"fmt"

	"framestudio/internal/models"
)

// Stage is a step of the frame builder.
type Stage int

const (
	StagePhoto Stage = iota
	StageFrame
	StageSize
)

var stageNames = [...]string{"photo", "frame", "size"}

func (s Stage) String() string {
	if s < StagePhoto || s > StageSize {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// ParseStage accepts a stage name or its index ("photo" or "0").
func ParseStage(v string) (Stage, error) {
	for i, name := range stageNames {
		if v == name || v == fmt.Sprint(i) {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", v, ErrUnknownStage)
}

// FrameFinder resolves frame ids for deep-link hints.
type FrameFinder interface {
	GetFrameByID(id string) (*models.Frame, error)
}

// Builder walks a visitor through photo, frame and size selection and
// assembles one cart line. It is not safe for concurrent use; the owning
// session serializes access.
type Builder struct {
	stage Stage
	photo *models.Photo
	frame *models.Frame
	size  *models.Size
	mat   *models.MatOption
	added bool
}

func NewBuilder() *Builder {
	return &Builder{stage: StagePhoto}
}

func (b *Builder) Stage() Stage { return b.stage }

func (b *Builder) Photo() *models.Photo   { return b.photo }
func (b *Builder) Frame() *models.Frame   { return b.frame }
func (b *Builder) Size() *models.Size     { return b.size }
func (b *Builder) Mat() *models.MatOption { return b.mat }

// JustAdded reports whether the last action was a successful submit.
func (b *Builder) JustAdded() bool { return b.added }

func (b *Builder) SelectPhoto(p models.Photo) {
	b.photo = &p
	b.added = false
}

// ClearPhoto discards the photo and sends the flow back to the photo stage.
func (b *Builder) ClearPhoto() {
	b.photo = nil
	b.stage = StagePhoto
	b.added = false
}

func (b *Builder) SelectFrame(f models.Frame) {
	b.frame = &f
	b.added = false
}

func (b *Builder) SelectSize(s models.Size) {
	b.size = &s
	b.added = false
}

func (b *Builder) SelectMat(m models.MatOption) {
	b.mat = &m
	b.added = false
}

func (b *Builder) ClearMat() {
	b.mat = nil
	b.added = false
}

// CanProceed reports whether the current stage has its selection.
func (b *Builder) CanProceed() bool {
	switch b.stage {
	case StagePhoto:
		return b.photo != nil
	case StageFrame:
		return b.frame != nil
	case StageSize:
		return b.size != nil
	}
	return false
}

// Next advances one stage.
func (b *Builder) Next() error {
	if b.stage >= StageSize || !b.CanProceed() {
		return ErrStageLocked
	}
	b.stage++
	return nil
}

// Back returns to the previous stage; it never fails.
func (b *Builder) Back() {
	if b.stage > StagePhoto {
		b.stage--
	}
}

// Reachable reports whether every prerequisite of target is selected.
func (b *Builder) Reachable(target Stage) bool {
	switch target {
	case StagePhoto:
		return true
	case StageFrame:
		return b.photo != nil
	case StageSize:
		return b.photo != nil && b.frame != nil
	}
	return false
}

// GoTo jumps directly to target when its prerequisites hold.
func (b *Builder) GoTo(target Stage) error {
	if target < StagePhoto || target > StageSize {
		return ErrUnknownStage
	}
	if !b.Reachable(target) {
		return ErrStageLocked
	}
	b.stage = target
	return nil
}

// ApplyFrameHint pre-selects a frame from an external link. Unknown ids are
// ignored and leave the flow where it was. With a photo already chosen the
// flow moves on to size selection.
func (b *Builder) ApplyFrameHint(frameID string, frames FrameFinder) bool {
	if frameID == "" {
		return false
	}
	frame, err := frames.GetFrameByID(frameID)
	if err != nil {
		return false
	}
	b.SelectFrame(*frame)
	if b.photo != nil {
		b.stage = StageSize
	}
	return true
}

// ResolutionCheck compares the photo with the selected size. ok is false
// when either is missing or the photo dimensions are unknown.
func (b *Builder) ResolutionCheck() (models.ResolutionCheck, bool) {
	if b.photo == nil || b.size == nil || !b.photo.HasDimensions() {
		return models.ResolutionCheck{}, false
	}
	return models.CheckResolution(b.photo.Width, b.photo.Height, *b.size), true
}

// LineItem assembles the cart input from the current selections.
func (b *Builder) LineItem() (models.LineItemInput, error) {
	if b.photo == nil || b.frame == nil || b.size == nil {
		return models.LineItemInput{}, ErrIncomplete
	}
	mat := models.NoMat
	if b.mat != nil {
		mat = *b.mat
	}
	return models.LineItemInput{
		PhotoPreview: b.photo.Preview,
		PhotoName:    b.photo.Name,
		FrameID:      b.frame.ID,
		FrameName:    b.frame.Name,
		FrameColor:   b.frame.Color,
		SizeID:       b.size.ID,
		SizeName:     b.size.Label,
		Price:        b.size.Price,
		MatID:        mat.ID,
		MatName:      mat.Label,
		MatPrice:     mat.Price,
	}, nil
}

// Submit adds the configured frame to cart and opens the cart drawer.
func (b *Builder) Submit(cart *Cart) (models.CartLineItem, error) {
	if b.stage != StageSize || b.size == nil {
		return models.CartLineItem{}, ErrSubmitNotReady
	}
	in, err := b.LineItem()
	if err != nil {
		return models.CartLineItem{}, err
	}
	item := cart.AddItem(in)
	b.added = true
	cart.SetCartOpen(true)
	return item, nil
}

// Reset starts the builder over.
func (b *Builder) Reset() {
	*b = Builder{stage: StagePhoto}
}

// BuilderView is the client-facing state of a builder.
type BuilderView struct {
	Stage      string                  `json:"stage"`
	StageIndex int                     `json:"stageIndex"`
	CanProceed bool                    `json:"canProceed"`
	CanSubmit  bool                    `json:"canSubmit"`
	Reachable  []string                `json:"reachable"`
	Photo      *models.Photo           `json:"photo,omitempty"`
	Frame      *models.Frame           `json:"frame,omitempty"`
	Size       *models.Size            `json:"size,omitempty"`
	Mat        *models.MatOption       `json:"mat,omitempty"`
	Price      int64                   `json:"price"`
	Formatted  string                  `json:"formattedPrice"`
	Resolution *models.ResolutionCheck `json:"resolution,omitempty"`
	JustAdded  bool                    `json:"justAdded"`
}

// View summarizes the builder for clients. The photo is reported without its
// preview data URI.
func (b *Builder) View() BuilderView {
	v := BuilderView{
		Stage:      b.stage.String(),
		StageIndex: int(b.stage),
		CanProceed: b.CanProceed(),
		CanSubmit:  b.stage == StageSize && b.size != nil && b.photo != nil && b.frame != nil,
		Frame:      b.frame,
		Size:       b.size,
		Mat:        b.mat,
		JustAdded:  b.added,
	}
	if b.photo != nil {
		// the preview is served separately
		p := *b.photo
		p.Preview = ""
		v.Photo = &p
	}
	for s := StagePhoto; s <= StageSize; s++ {
		if b.Reachable(s) {
			v.Reachable = append(v.Reachable, s.String())
		}
	}
	if b.size != nil {
		v.Price = b.size.Price
		if b.mat != nil {
			v.Price += b.mat.Price
		}
	}
	v.Formatted = models.FormatPrice(v.Price)
	if check, ok := b.ResolutionCheck(); ok {
		v.Resolution = &check
	}
	return v
}
