package core

// Color names a palette entry for a screen cell. The platform layer maps
// each entry to concrete terminal colors, so game drawing stays free of
// styling libraries.
type Color uint8

// Interface colors.
const (
	ColorDefault Color = iota
	ColorBorder
	ColorTitle
	ColorMuted
	ColorAccent
	ColorWarning
	ColorEmpty
)

// Tile colors, one per power of two up to 2048, then a shared color for
// everything beyond.
const (
	ColorTile2 Color = iota + 32
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTileSuper
)

// TileColor returns the palette entry for a tile value. Empty cells get
// ColorEmpty.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorEmpty
	}
	c := ColorTile2
	for v := 2; v < value && c < ColorTileSuper; v <<= 1 {
		c++
	}
	return c
}

// IsTile reports whether c is one of the tile colors.
func (c Color) IsTile() bool {
	return c >= ColorTile2 && c <= ColorTileSuper
}
