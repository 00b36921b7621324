package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
)

type glTexture struct {
	handle uint32
}

// TextureCreate uploads the base level of texture. No mipmaps are generated.
func (r *OpenGLRenderer) TextureCreate(pixels []uint8, texture *metadata.Texture) error {
	format, err := pixelFormat(texture.ChannelCount)
	if err != nil {
		return err
	}
	expected := int(texture.Width) * int(texture.Height) * int(texture.ChannelCount)
	if len(pixels) < expected {
		return fmt.Errorf("texture %s: expected %d bytes of pixels, got %d", texture.Name, expected, len(pixels))
	}

	var handle uint32
	gl.ActiveTexture(gl.TEXTURE0)
	gl.GenTextures(1, &handle)
	gl.BindTexture(gl.TEXTURE_2D, handle)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterMode(texture.FilterMinify))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterMode(texture.FilterMagnify))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, repeatMode(texture.Repeat))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, repeatMode(texture.Repeat))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, 0)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(texture.Width), int32(texture.Height), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := checkError("texture upload"); err != nil {
		gl.DeleteTextures(1, &handle)
		return err
	}

	texture.InternalData = &glTexture{handle: handle}
	texture.Generation++
	return nil
}

func (r *OpenGLRenderer) TextureDestroy(texture *metadata.Texture) {
	t, ok := texture.InternalData.(*glTexture)
	if !ok || t == nil {
		return
	}
	gl.DeleteTextures(1, &t.handle)
	texture.InternalData = nil
}

func pixelFormat(channels uint8) (uint32, error) {
	switch channels {
	case 4:
		return gl.RGBA, nil
	case 3:
		return gl.RGB, nil
	case 1:
		return gl.RED, nil
	default:
		return 0, fmt.Errorf("unsupported channel count %d", channels)
	}
}

func filterMode(filter metadata.TextureFilter) int32 {
	if filter == metadata.TextureFilterModeNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func repeatMode(repeat metadata.TextureRepeat) int32 {
	switch repeat {
	case metadata.TextureRepeatRepeat:
		return gl.REPEAT
	case metadata.TextureRepeatMirroredRepeat:
		return gl.MIRRORED_REPEAT
	default:
		return gl.CLAMP_TO_EDGE
	}
}
