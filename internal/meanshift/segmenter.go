package meanshift

import (
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithLogger sets the logger used for stage timings and convergence
// warnings. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Segmenter) {
		s.logger = logger
	}
}

// WithWorkers sets how many goroutines filter rows at SpeedUpNone.
// Non-positive values keep the default of runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(s *Segmenter) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMaxIterations sets the per-seed iteration cap. Non-positive values
// keep DefaultMaxIterations.
func WithMaxIterations(n int) Option {
	return func(s *Segmenter) {
		if n > 0 {
			s.maxIter = n
		}
	}
}

// Segmenter runs the full segmentation pipeline with fixed parameters.
// It holds no per-call state and is safe for concurrent use.
type Segmenter struct {
	params  Params
	logger  zerolog.Logger
	workers int
	maxIter int
}

// New validates params and returns a Segmenter.
func New(params Params, opts ...Option) (*Segmenter, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s := &Segmenter{
		params:  params,
		logger:  zerolog.Nop(),
		workers: runtime.GOMAXPROCS(0),
		maxIter: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Params returns the parameters the Segmenter was built with.
func (s *Segmenter) Params() Params {
	return s.params
}

func (s *Segmenter) String() string {
	return fmt.Sprintf("Segmenter(spatial_radius=%d, range_radius=%g, min_density=%d, speedup_level=%s)",
		s.params.SpatialRadius, s.params.RangeRadius, s.params.MinDensity, s.params.SpeedUp)
}

// RegionInfo describes one output region.
type RegionInfo struct {
	// ID is the region's label in the output LabelMap.
	ID int
	// PixelCount is the number of pixels labeled ID.
	PixelCount int
	// Mean is the region's mean feature in range space.
	Mean []float64
	// Color is Mean converted to the input's channel layout.
	Color []uint8
	// Bounds is the smallest rectangle holding every pixel of the region.
	Bounds image.Rectangle
	// CentroidX and CentroidY are the mean column and row of its pixels.
	CentroidX float64
	CentroidY float64
}

// Stats reports what each stage did.
type Stats struct {
	Filter         FilterStats
	InitialRegions int
	FuseMerges     int
	PruneMerges    int
	FilterTime     time.Duration
	GraphTime      time.Duration
	PruneTime      time.Duration
}

// Result is the output of one segmentation.
type Result struct {
	// Segmented has the input's dimensions and channels, every pixel
	// replaced by the mean color of its region.
	Segmented *Image
	// Labels holds the region id of every pixel.
	Labels *LabelMap
	// RegionCount is the number of regions, ids 0..RegionCount-1.
	RegionCount int
	// Regions is indexed by region id.
	Regions []RegionInfo
	Stats   Stats
}

// Segment runs the filter, builds and fuses the region graph, prunes small
// regions and paints the result. img is only read.
func (s *Segmenter) Segment(img *Image) (*Result, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	fs := NewFeatureSpace(s.params, img.Channels)
	if img.Len() == 0 {
		return emptyResult(img, fs), nil
	}

	var stats Stats
	start := time.Now()
	filter := NewModeFilter(fs, s.params.SpeedUp, FilterOptions{
		MaxIterations: s.maxIter,
		Workers:       s.workers,
		Logger:        s.logger,
	})
	modes, fstats := filter.Filter(img)
	stats.Filter = fstats
	stats.FilterTime = time.Since(start)

	start = time.Now()
	g := BuildGraph(modes, fs, s.params.connectivity())
	stats.InitialRegions = g.Live()
	stats.FuseMerges = g.Fuse(fs.FusionTolerance())
	stats.GraphTime = time.Since(start)

	start = time.Now()
	stats.PruneMerges = Prune(g, s.params.MinDensity)
	labels, order := g.Finalize()
	stats.PruneTime = time.Since(start)

	regions := describeRegions(g, fs, labels, order)
	res := &Result{
		Segmented:   paint(img, labels, regions),
		Labels:      labels,
		RegionCount: len(regions),
		Regions:     regions,
		Stats:       stats,
	}

	s.logger.Debug().
		Str("segmenter", s.String()).
		Int("width", img.Width).
		Int("height", img.Height).
		Int("seeks", fstats.Seeks).
		Int("propagated", fstats.Propagated).
		Int64("iterations", fstats.Iterations).
		Int("initial_regions", stats.InitialRegions).
		Int("fuse_merges", stats.FuseMerges).
		Int("prune_merges", stats.PruneMerges).
		Int("regions", res.RegionCount).
		Dur("filter", stats.FilterTime).
		Dur("graph", stats.GraphTime).
		Dur("prune", stats.PruneTime).
		Msg("segmented image")

	return res, nil
}

// Segment validates the parameters and segments img in one call.
func Segment(img *Image, spatialRadius int, rangeRadius float64, minDensity int, speedUp SpeedUpLevel) (*Result, error) {
	s, err := New(Params{
		SpatialRadius: spatialRadius,
		RangeRadius:   rangeRadius,
		MinDensity:    minDensity,
		SpeedUp:       speedUp,
	})
	if err != nil {
		return nil, err
	}
	return s.Segment(img)
}

func emptyResult(img *Image, fs FeatureSpace) *Result {
	return &Result{
		Segmented:   NewImage(img.Width, img.Height, img.Channels),
		Labels:      NewLabelMap(img.Width, img.Height),
		RegionCount: 1,
		Regions: []RegionInfo{{
			Mean:  make([]float64, fs.RangeDim),
			Color: make([]uint8, img.Channels),
		}},
	}
}

func describeRegions(g *Graph, fs FeatureSpace, labels *LabelMap, order []int) []RegionInfo {
	regions := make([]RegionInfo, len(order))
	sumX := make([]float64, len(order))
	sumY := make([]float64, len(order))
	for k, id := range order {
		r := g.Regions[id]
		info := RegionInfo{
			ID:         k,
			PixelCount: r.Count,
			Mean:       append([]float64(nil), r.Mean...),
			Color:      make([]uint8, fs.RangeDim),
			Bounds:     image.Rectangle{Min: image.Pt(labels.Width, labels.Height)},
		}
		fs.ToNative(info.Mean, info.Color)
		regions[k] = info
	}

	for y := 0; y < labels.Height; y++ {
		for x := 0; x < labels.Width; x++ {
			k := labels.Labels[y*labels.Width+x]
			b := &regions[k].Bounds
			b.Min.X = min(b.Min.X, x)
			b.Min.Y = min(b.Min.Y, y)
			b.Max.X = max(b.Max.X, x+1)
			b.Max.Y = max(b.Max.Y, y+1)
			sumX[k] += float64(x)
			sumY[k] += float64(y)
		}
	}
	for k := range regions {
		if n := regions[k].PixelCount; n > 0 {
			regions[k].CentroidX = sumX[k] / float64(n)
			regions[k].CentroidY = sumY[k] / float64(n)
		}
	}
	return regions
}

func paint(img *Image, labels *LabelMap, regions []RegionInfo) *Image {
	out := NewImage(img.Width, img.Height, img.Channels)
	c := img.Channels
	for i, id := range labels.Labels {
		copy(out.Pix[i*c:(i+1)*c], regions[id].Color)
	}
	return out
}
