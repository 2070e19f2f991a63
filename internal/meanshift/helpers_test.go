package meanshift

import "math/rand"

// grayImage builds a single-channel image from a per-pixel value function.
func grayImage(width, height int, value func(x, y int) uint8) *Image {
	img := NewImage(width, height, 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Pix[y*width+x] = value(x, y)
		}
	}
	return img
}

// uniformGray returns a grayscale image with every pixel set to v.
func uniformGray(width, height int, v uint8) *Image {
	return grayImage(width, height, func(x, y int) uint8 { return v })
}

// blockImage is the 4x4 image with a 2x2 block of 10 at the top-left and
// 200 elsewhere.
func blockImage() *Image {
	return grayImage(4, 4, func(x, y int) uint8 {
		if x < 2 && y < 2 {
			return 10
		}
		return 200
	})
}

// colorImage builds a three-channel image from a per-pixel color function.
func colorImage(width, height int, value func(x, y int) [3]uint8) *Image {
	img := NewImage(width, height, 3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := value(x, y)
			copy(img.PixelAt(x, y), c[:])
		}
	}
	return img
}

// noiseImage returns a reproducible grayscale image with values drawn from
// a handful of levels plus small jitter.
func noiseImage(width, height int, seed int64) *Image {
	rng := rand.New(rand.NewSource(seed))
	levels := []int{30, 90, 150, 210}
	return grayImage(width, height, func(x, y int) uint8 {
		base := levels[((x/4)+(y/3))%len(levels)]
		return uint8(base + rng.Intn(7) - 3)
	})
}

// squaresImage is a 14x14 background of 200 holding squares of 1, 4, 9 and
// 16 pixels with distinct values, each surrounded by background.
func squaresImage() *Image {
	return grayImage(14, 14, func(x, y int) uint8 {
		switch {
		case x == 1 && y == 1:
			return 20
		case x >= 4 && x <= 5 && y >= 1 && y <= 2:
			return 60
		case x >= 8 && x <= 10 && y >= 1 && y <= 3:
			return 100
		case x >= 1 && x <= 4 && y >= 6 && y <= 9:
			return 140
		}
		return 200
	})
}

// modesFromGray builds filter output equal to the input values, so graph
// and pruning tests can run without the filter.
func modesFromGray(img *Image) *Modes {
	m := &Modes{Width: img.Width, Height: img.Height, Dim: 3, Vectors: make([]float64, img.Len()*3)}
	for i := 0; i < img.Len(); i++ {
		v := m.At(i)
		v[0] = float64(i % img.Width)
		v[1] = float64(i / img.Width)
		v[2] = float64(img.Pix[i])
	}
	return m
}

// countComponents counts 8-connected components of equal pixel values.
func countComponents(img *Image) int {
	seen := make([]bool, img.Len())
	count := 0
	for start := range seen {
		if seen[start] {
			continue
		}
		count++
		seen[start] = true
		stack := []int{start}
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			px, py := p%img.Width, p/img.Width
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					qx, qy := px+dx, py+dy
					if qx < 0 || qx >= img.Width || qy < 0 || qy >= img.Height {
						continue
					}
					q := qy*img.Width + qx
					if !seen[q] && img.Pix[q] == img.Pix[p] {
						seen[q] = true
						stack = append(stack, q)
					}
				}
			}
		}
	}
	return count
}
