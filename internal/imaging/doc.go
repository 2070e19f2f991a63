// Package imaging connects image files to the mean shift segmenter.
//
// It loads and caches decoded images, prepares them (crop, rescale), converts
// them to and from the interleaved 8-bit rasters the meanshift package works
// on, encodes results for transport, and summarizes segmented regions.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Supported Formats
//
// Decoding: PNG, JPEG, GIF, BMP, TIFF, WebP and TGA. The format is detected
// from the file header, not its extension. TGA files carry no header magic
// and are recognised by a .tga extension.
//
// Encoding: PNG (default) and lossless WebP.
//
// # Channels
//
// Grayscale image models become single-channel rasters; every other model
// becomes a three-channel RGB raster. Transparent pixels are composited onto
// black. ToRaster can force a luminance conversion for colour input.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The remaining functions are
// stateless and never modify their inputs.
//
// # Color Representation
//
// Region colors are returned in multiple formats:
//   - Hex: 6-character format "#RRGGBB"
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
package imaging
