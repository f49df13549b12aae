// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomono"
)

// FontURL is the virtual file name the HUD font is registered under.
const FontURL = "gomono.ttf"

// TrailDotSize is the edge length of a trail dot in pixels.
const TrailDotSize = 4

// AssetManager builds the textures and font the scene draws with. There are
// no asset files: the font ships with x/image and the dot is generated.
type AssetManager struct {
	font     *common.Font
	trailDot common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{}
}

// Preload registers the embedded font with engo's file loader. It must run
// from a scene's Preload.
func (am *AssetManager) Preload() error {
	if err := engo.Files.LoadReaderData(FontURL, bytes.NewReader(gomono.TTF)); err != nil {
		return fmt.Errorf("failed to load HUD font: %w", err)
	}
	return nil
}

// LoadAssets prepares the font and textures once the GL context exists.
func (am *AssetManager) LoadAssets(size float64) error {
	am.font = &common.Font{
		URL:  FontURL,
		FG:   color.White,
		Size: size,
	}
	if err := am.font.CreatePreloaded(); err != nil {
		return fmt.Errorf("failed to create HUD font: %w", err)
	}

	img := DotImage(TrailDotSize)
	am.trailDot = common.NewTextureSingle(common.NewImageObject(img))
	return nil
}

// Font returns the HUD font.
func (am *AssetManager) Font() *common.Font {
	return am.font
}

// TrailDot returns the trail dot texture.
func (am *AssetManager) TrailDot() common.Drawable {
	return am.trailDot
}

// DotImage draws a filled white disc of the given diameter. Tinting happens
// through the render component colour.
func DotImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
	return img
}
