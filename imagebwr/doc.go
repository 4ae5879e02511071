// Package imagebwr provides a two-plane black/white/red image format for Spectra
// tri-color e-paper panels.
//
// The panel encodes each pixel with one bit in a black plane and one bit in a
// red plane. Neither bit set means white; the driver never allows both bits to
// be set for the same pixel. Bits are packed 8 pixels per byte, most
// significant bit first, row-major.
//
// Memory layout example for an 8-pixel row drawn "B W R W W W W B":
//
//	BlackPix: 0b1000_0001 (pixels 0 and 7 black)
//	RedPix:   0b0010_0000 (pixel 2 red)
//
// This package provides:
//
// - Color: the three-valued panel color (White, Black, Red)
// - ColorModel: a color model classifying standard Go colors to the nearest panel color
// - Rotation: drawing-space rotation in 90° clockwise steps
// - HorizontalMSB: an image.Image/draw.Image implementation backed by the two planes
//
// Drawing always happens in logical coordinates: after SetRotation(Rotate90)
// or SetRotation(Rotate270) the reported bounds swap width and height and
// pixel writes are remapped to the unrotated panel buffer. Writes that fall
// off the panel are silently clipped.
//
// Example usage:
//
//	// Create a 104x212 image (2.13" panel)
//	img := imagebwr.NewHorizontalMSB(image.Rect(0, 0, 104, 212))
//
//	// Landscape orientation
//	img.SetRotation(imagebwr.Rotate90)
//
//	// Set a pixel to red
//	img.SetColor(10, 20, imagebwr.Red)
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(imagebwr.Black), image.Point{}, draw.Src)
//
// The raw planes are handed to the panel driver via BlackBuffer and RedBuffer.
package imagebwr
