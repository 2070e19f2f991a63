// Package meanshift segments raster images with the mean shift procedure.
//
// A pixel is mapped to a point in a joint spatial-range feature space: its
// column and row followed by its range values (raw intensity for grayscale
// images, CIE L*u*v* scaled to 0-100 for color images). Each point is moved
// uphill on the feature-space density until it settles on a mode; pixels
// whose modes agree are fused into regions, and regions smaller than the
// minimum density are folded into their most similar neighbor.
//
// # Pipeline
//
// A call to Segment runs four stages once, strictly in order:
//
//  1. FeatureSpace: convert pixels to feature vectors and define the kernel
//     window and the distances used by the later stages
//  2. ModeFilter: run mean shift from every pixel (or from representative
//     seeds, depending on the speed-up level) to find its mode
//  3. Graph: label connected pixels with matching modes, build the region
//     adjacency graph and fuse adjacent regions with near-identical means
//  4. Prune: merge regions below the minimum pixel count into the neighbor
//     with the weakest boundary until none remain
//
// # Speed-up Levels
//
//   - SpeedUpNone: every pixel is filtered independently; rows are spread
//     across worker goroutines
//   - SpeedUpMedium: a seed's result is copied to adjacent pixels whose
//     starting feature vectors are near duplicates of the seed's
//   - SpeedUpHigh: additionally, a pixel adopts the mode of an already
//     processed neighbor when a single trial step heads towards it
//
// Medium and high levels process pixels in row-major order and are
// reproducible for identical inputs.
//
// # Outputs
//
// Result carries the segmented image (each pixel replaced by the mean of its
// region in the input's channel layout), the label map (uint32 per pixel,
// compact ids 0..RegionCount-1 in order of first appearance) and the number
// of regions.
//
// # Error Handling
//
// Invalid parameters are reported as *ConfigError before any work starts.
// Buffers whose length does not match their dimensions return
// ErrDimensionMismatch. Pixels that hit the iteration cap are counted in
// FilterStats.NonConverged and keep their last iterate; this never fails
// the call. Empty images produce a single empty region.
package meanshift
