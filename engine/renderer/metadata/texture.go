package metadata

/** @brief Marks an identifier or generation that has not been assigned. */
const InvalidID uint32 = 4294967295

/**
 * @brief Represents various types of textures.
 */
type TextureType int

const (
	/** @brief A standard two-dimensional texture. */
	TextureType2d TextureType = iota
)

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest TextureFilter = 0x0
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilter = 0x1
)

type TextureRepeat int

const (
	TextureRepeatRepeat         TextureRepeat = 0x1
	TextureRepeatMirroredRepeat TextureRepeat = 0x2
	TextureRepeatClampToEdge    TextureRepeat = 0x3
)

/**
 * @brief Represents a texture. The handle the rest of the engine passes
 * around; the pixels live on the GPU.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID uint32
	/** @brief The texture type. */
	TextureType TextureType
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief The number of channels in the texture. Always 4 (RGBA) once uploaded. */
	ChannelCount uint8
	/** @brief Minification filter. */
	FilterMinify TextureFilter
	/** @brief Magnification filter. */
	FilterMagnify TextureFilter
	/** @brief Wrapping mode on both axes. */
	Repeat TextureRepeat
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief The texture Name. Usually the file it was loaded from. */
	Name string
	/** @brief Backend specific data, e.g. the GL texture name. */
	InternalData interface{}
}
