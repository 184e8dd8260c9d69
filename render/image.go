package render

import (
	"fmt"
	"strings"
)

// TextureFormat is the pixel layout of an Image.
type TextureFormat uint8

const (
	TextureFormatRgba8Unorm TextureFormat = iota
	TextureFormatRgba8UnormSrgb
	TextureFormatBgra8UnormSrgb
)

// BytesPerPixel returns the size of one texel.
func (f TextureFormat) BytesPerPixel() int {
	return 4
}

func (f TextureFormat) String() string {
	switch f {
	case TextureFormatRgba8Unorm:
		return "Rgba8Unorm"
	case TextureFormatRgba8UnormSrgb:
		return "Rgba8UnormSrgb"
	case TextureFormatBgra8UnormSrgb:
		return "Bgra8UnormSrgb"
	default:
		return fmt.Sprintf("TextureFormat(%d)", uint8(f))
	}
}

// TextureUsages is a set of ways the GPU may use an Image.
type TextureUsages uint32

const (
	TextureUsageCopySrc TextureUsages = 1 << iota
	TextureUsageCopyDst
	TextureUsageTextureBinding
	TextureUsageStorageBinding
	TextureUsageRenderAttachment
)

var textureUsageNames = []string{"COPY_SRC", "COPY_DST", "TEXTURE_BINDING", "STORAGE_BINDING", "RENDER_ATTACHMENT"}

// Has reports whether every usage in o is set.
func (u TextureUsages) Has(o TextureUsages) bool {
	return u&o == o
}

func (u TextureUsages) String() string {
	var names []string
	for i, name := range textureUsageNames {
		if u&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}

// Image is a 2D texture held in CPU memory.
type Image struct {
	Width, Height int
	Format        TextureFormat
	Usage         TextureUsages
	Data          []byte
}

// NewImageFill creates a width x height image with every texel set to pixel.
// It panics if pixel does not match the format's texel size.
func NewImageFill(width, height int, pixel []byte, format TextureFormat, usage TextureUsages) Image {
	bpp := format.BytesPerPixel()
	if len(pixel) != bpp {
		panic(fmt.Sprintf("render: fill pixel has %d bytes, %s needs %d", len(pixel), format, bpp))
	}
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("render: invalid image size %dx%d", width, height))
	}

	data := make([]byte, width*height*bpp)
	for i := 0; i < len(data); i += bpp {
		copy(data[i:], pixel)
	}
	return Image{
		Width:  width,
		Height: height,
		Format: format,
		Usage:  usage,
		Data:   data,
	}
}

// IsRenderTarget reports whether the image can be drawn into by a camera.
func (img *Image) IsRenderTarget() bool {
	return img.Usage.Has(TextureUsageRenderAttachment)
}
