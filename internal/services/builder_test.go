package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framestudio/internal/models"
)

func testPhoto(w, h int) models.Photo {
	return models.Photo{Name: "family.jpg", ContentType: "image/jpeg", Preview: "data:image/jpeg;base64,AAAA", Width: w, Height: h}
}

func TestParseStage(t *testing.T) {
	tests := []struct {
		in   string
		want Stage
	}{
		{"photo", StagePhoto},
		{"frame", StageFrame},
		{"size", StageSize},
		{"0", StagePhoto},
		{"2", StageSize},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStage(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStage("mat")
	assert.ErrorIs(t, err, ErrUnknownStage)
	assert.Equal(t, "Stage(7)", Stage(7).String())
}

func TestBuilder_NextRequiresSelection(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, StagePhoto, b.Stage())
	assert.False(t, b.CanProceed())
	assert.ErrorIs(t, b.Next(), ErrStageLocked)

	b.SelectPhoto(testPhoto(0, 0))
	require.NoError(t, b.Next())
	assert.Equal(t, StageFrame, b.Stage())

	assert.ErrorIs(t, b.Next(), ErrStageLocked)
	b.SelectFrame(testFrames["classic-black"])
	require.NoError(t, b.Next())
	assert.Equal(t, StageSize, b.Stage())

	b.SelectSize(size8x12)
	assert.ErrorIs(t, b.Next(), ErrStageLocked, "size is the last stage")
	assert.Equal(t, StageSize, b.Stage())
}

func TestBuilder_BackNeverFails(t *testing.T) {
	b := NewBuilder()
	b.Back()
	assert.Equal(t, StagePhoto, b.Stage())

	b.SelectPhoto(testPhoto(0, 0))
	require.NoError(t, b.Next())
	b.Back()
	assert.Equal(t, StagePhoto, b.Stage())
	assert.NotNil(t, b.Photo(), "going back keeps selections")
}

func TestBuilder_GoTo(t *testing.T) {
	b := NewBuilder()
	assert.ErrorIs(t, b.GoTo(StageFrame), ErrStageLocked)
	assert.ErrorIs(t, b.GoTo(StageSize), ErrStageLocked)
	assert.ErrorIs(t, b.GoTo(Stage(5)), ErrUnknownStage)

	b.SelectPhoto(testPhoto(0, 0))
	b.SelectFrame(testFrames["natural-oak"])
	require.NoError(t, b.GoTo(StageSize))
	assert.Equal(t, StageSize, b.Stage())

	require.NoError(t, b.GoTo(StagePhoto))
	assert.Equal(t, StagePhoto, b.Stage())
}

func TestBuilder_ClearPhotoReturnsToPhotoStage(t *testing.T) {
	b := NewBuilder()
	b.SelectPhoto(testPhoto(0, 0))
	b.SelectFrame(testFrames["classic-black"])
	require.NoError(t, b.GoTo(StageSize))

	b.ClearPhoto()

	assert.Nil(t, b.Photo())
	assert.Equal(t, StagePhoto, b.Stage())
	assert.NotNil(t, b.Frame())
	assert.False(t, b.Reachable(StageFrame))
}

func TestBuilder_ApplyFrameHint(t *testing.T) {
	t.Run("unknown frame is ignored", func(t *testing.T) {
		b := NewBuilder()
		assert.False(t, b.ApplyFrameHint("bamboo", testFrames))
		assert.False(t, b.ApplyFrameHint("", testFrames))
		assert.Nil(t, b.Frame())
		assert.Equal(t, StagePhoto, b.Stage())
	})

	t.Run("without photo stays on photo stage", func(t *testing.T) {
		b := NewBuilder()
		require.True(t, b.ApplyFrameHint("natural-oak", testFrames))
		assert.Equal(t, "natural-oak", b.Frame().ID)
		assert.Equal(t, StagePhoto, b.Stage())
	})

	t.Run("with photo jumps to size", func(t *testing.T) {
		b := NewBuilder()
		b.SelectPhoto(testPhoto(0, 0))
		require.True(t, b.ApplyFrameHint("classic-black", testFrames))
		assert.Equal(t, StageSize, b.Stage())
	})
}

func TestBuilder_LineItem(t *testing.T) {
	b := NewBuilder()
	_, err := b.LineItem()
	assert.ErrorIs(t, err, ErrIncomplete)

	b.SelectPhoto(testPhoto(0, 0))
	b.SelectFrame(testFrames["classic-black"])
	b.SelectSize(size12x16)

	in, err := b.LineItem()
	require.NoError(t, err)
	assert.Equal(t, "none", in.MatID)
	assert.Equal(t, "No Mat", in.MatName)
	assert.Zero(t, in.MatPrice)
	assert.Equal(t, int64(3500), in.Price)
	assert.Equal(t, "12×16", in.SizeName)
	assert.Equal(t, "family.jpg", in.PhotoName)

	b.SelectMat(whiteMat)
	in, err = b.LineItem()
	require.NoError(t, err)
	assert.Equal(t, "white", in.MatID)
	assert.Equal(t, int64(300), in.MatPrice)

	b.ClearMat()
	in, err = b.LineItem()
	require.NoError(t, err)
	assert.Equal(t, models.NoMatID, in.MatID)
}

func TestBuilder_Submit(t *testing.T) {
	cart := NewCart(nil)
	b := NewBuilder()
	b.SelectPhoto(testPhoto(0, 0))
	b.SelectFrame(testFrames["classic-black"])

	_, err := b.Submit(cart)
	assert.ErrorIs(t, err, ErrSubmitNotReady)

	require.NoError(t, b.GoTo(StageSize))
	_, err = b.Submit(cart)
	assert.ErrorIs(t, err, ErrSubmitNotReady, "no size selected")

	b.SelectSize(size16x20)
	item, err := b.Submit(cart)
	require.NoError(t, err)

	assert.True(t, b.JustAdded())
	assert.True(t, cart.IsOpen())
	assert.Equal(t, 1, cart.TotalItems())
	assert.Equal(t, int64(4500), item.Price)

	b.SelectMat(whiteMat)
	assert.False(t, b.JustAdded(), "changing a selection clears the added flag")
}

func TestBuilder_Reset(t *testing.T) {
	b := NewBuilder()
	b.SelectPhoto(testPhoto(0, 0))
	b.SelectFrame(testFrames["classic-black"])
	b.SelectSize(size8x12)
	b.SelectMat(whiteMat)
	require.NoError(t, b.GoTo(StageSize))

	b.Reset()

	assert.Equal(t, StagePhoto, b.Stage())
	assert.Nil(t, b.Photo())
	assert.Nil(t, b.Frame())
	assert.Nil(t, b.Size())
	assert.Nil(t, b.Mat())
}

func TestBuilder_ResolutionCheck(t *testing.T) {
	b := NewBuilder()
	_, ok := b.ResolutionCheck()
	assert.False(t, ok)

	b.SelectPhoto(testPhoto(1000, 1900))
	b.SelectSize(size12x16)
	check, ok := b.ResolutionCheck()
	require.True(t, ok)
	assert.True(t, check.OK)
	assert.Equal(t, 1800, check.MinRequired)

	b.SelectSize(size16x20)
	check, _ = b.ResolutionCheck()
	assert.False(t, check.OK)

	b.SelectPhoto(testPhoto(0, 0))
	_, ok = b.ResolutionCheck()
	assert.False(t, ok, "unknown dimensions")
}

func TestBuilder_View(t *testing.T) {
	b := NewBuilder()
	v := b.View()
	assert.Equal(t, "photo", v.Stage)
	assert.Equal(t, []string{"photo"}, v.Reachable)
	assert.Equal(t, "Rs. 0", v.Formatted)

	b.SelectPhoto(testPhoto(2000, 1500))
	b.SelectFrame(testFrames["classic-black"])
	b.SelectSize(size16x20)
	b.SelectMat(whiteMat)
	require.NoError(t, b.GoTo(StageSize))

	v = b.View()
	assert.Equal(t, "size", v.Stage)
	assert.Equal(t, 2, v.StageIndex)
	assert.True(t, v.CanSubmit)
	assert.Equal(t, []string{"photo", "frame", "size"}, v.Reachable)
	assert.Equal(t, int64(4800), v.Price)
	assert.Equal(t, "Rs. 4,800", v.Formatted)
	require.NotNil(t, v.Resolution)
	assert.False(t, v.Resolution.OK)
}

func TestBuilder_ViewOmitsPreview(t *testing.T) {
	b := NewBuilder()
	b.SelectPhoto(testPhoto(640, 480))

	v := b.View()
	require.NotNil(t, v.Photo)
	assert.Empty(t, v.Photo.Preview)
	assert.Equal(t, 640, v.Photo.Width)
	assert.NotEmpty(t, b.Photo().Preview, "the stored photo keeps its preview")
}
