package bough

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// textureIDCounter is a plain counter (no atomic, bough is single-threaded).
var textureIDCounter uint32

// Texture wraps an Ebitengine image. Texture identity is pointer identity:
// two sprites share a draw call only if they reference the same *Texture.
type Texture struct {
	ID     uint32
	Width  int
	Height int
	img    *ebiten.Image
}

// NewTexture wraps img as a texture. Decoding and caching images is left
// to the caller.
func NewTexture(img *ebiten.Image) *Texture {
	textureIDCounter++
	b := img.Bounds()
	return &Texture{
		ID:     textureIDCounter,
		Width:  b.Dx(),
		Height: b.Dy(),
		img:    img,
	}
}

// NewTextureFromImage uploads a decoded image and wraps it as a texture.
func NewTextureFromImage(src image.Image) *Texture {
	return NewTexture(ebiten.NewImageFromImage(src))
}

// EbitenImage returns the underlying image.
func (t *Texture) EbitenImage() *ebiten.Image {
	return t.img
}

// Full returns an Image covering the whole texture.
func (t *Texture) Full() Image {
	return Image{Texture: t, Width: t.Width, Height: t.Height}
}

// Sub returns an Image covering the given texel rectangle.
func (t *Texture) Sub(x, y, w, h int) Image {
	return Image{Texture: t, X: x, Y: y, Width: w, Height: h}
}

// Image is a clip rectangle within a texture, in texels.
type Image struct {
	Texture       *Texture
	X, Y          int
	Width, Height int
}

// Offset returns the image with its clip rectangle shifted by (dx, dy),
// e.g. to step through equally sized cells of a tile sheet.
func (i Image) Offset(dx, dy int) Image {
	i.X += dx
	i.Y += dy
	return i
}

// Bounds returns the clip rectangle as an image.Rectangle.
func (i Image) Bounds() image.Rectangle {
	return image.Rect(i.X, i.Y, i.X+i.Width, i.Y+i.Height)
}

// subImage returns the clipped Ebitengine image, or nil without a texture.
func (i Image) subImage() *ebiten.Image {
	if i.Texture == nil || i.Texture.img == nil {
		return nil
	}
	return i.Texture.img.SubImage(i.Bounds()).(*ebiten.Image)
}

// white texture singleton (no sync.Once, bough is single-threaded)
var whiteTexture *Texture

// WhiteTexture returns a shared 1x1 white texture used for solid color sprites.
func WhiteTexture() *Texture {
	if whiteTexture == nil {
		img := ebiten.NewImage(1, 1)
		img.Fill(color.White)
		whiteTexture = NewTexture(img)
	}
	return whiteTexture
}

// magenta placeholder singleton
var magentaTexture *Texture

func ensureMagentaTexture() *Texture {
	if magentaTexture == nil {
		img := ebiten.NewImage(1, 1)
		img.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
		magentaTexture = NewTexture(img)
	}
	return magentaTexture
}

// Atlas holds one or more texture pages and a map of named regions.
type Atlas struct {
	// Pages contains the atlas textures indexed by page number.
	Pages   []*Texture
	regions map[string]Image
}

// Region returns the Image for the given name. If the name doesn't exist,
// it logs a warning in debug mode and returns a 1x1 magenta placeholder.
func (a *Atlas) Region(name string) Image {
	if r, ok := a.regions[name]; ok {
		return r
	}
	if globalDebug {
		log.Printf("bough: atlas region %q not found, using magenta placeholder", name)
	}
	return ensureMagentaTexture().Full()
}

// Has reports whether the atlas contains a region with the given name.
func (a *Atlas) Has(name string) bool {
	_, ok := a.regions[name]
	return ok
}

// LoadAtlas parses TexturePacker JSON data and associates the given pages.
// Supports both the hash format (single "frames" object) and the array
// format ("textures" array with per-page frame lists). Rotated frames are
// not supported and are rejected.
func LoadAtlas(jsonData []byte, pages []*Texture) (*Atlas, error) {
	var format struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &format); err != nil {
		return nil, fmt.Errorf("bough: failed to parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]Image),
	}

	switch {
	case format.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(format.Textures, &textures); err != nil {
			return nil, fmt.Errorf("bough: failed to parse atlas textures array: %w", err)
		}
		for i, tex := range textures {
			if err := atlas.addFrames(tex.Frames, i); err != nil {
				return nil, err
			}
		}
	case format.Frames != nil:
		var frames map[string]jsonFrame
		if err := json.Unmarshal(format.Frames, &frames); err != nil {
			return nil, fmt.Errorf("bough: failed to parse atlas frames: %w", err)
		}
		if err := atlas.addFrames(frames, 0); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("bough: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	return atlas, nil
}

func (a *Atlas) addFrames(frames map[string]jsonFrame, page int) error {
	if page >= len(a.Pages) {
		return fmt.Errorf("bough: atlas references page %d but only %d pages were given", page, len(a.Pages))
	}
	for name, f := range frames {
		if f.Rotated {
			return fmt.Errorf("bough: atlas frame %q is rotated; repack without rotation", name)
		}
		a.regions[name] = a.Pages[page].Sub(f.Frame.X, f.Frame.Y, f.Frame.W, f.Frame.H)
	}
	return nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}
