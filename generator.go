package tilefish

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/gogpu/tilefish/internal/fish"
)

// DefaultSize is the edge length of generated tiles.
const DefaultSize = 256

// Generator produces one freshly synthesized raster buffer per call.
//
// The buffer must hold exactly size*size*4 bytes, row-major RGBA with no
// header. Consecutive calls may return different images; callers cannot
// seed them.
type Generator interface {
	Generate(ctx context.Context) ([]byte, error)
}

// GeneratorFunc adapts an ordinary function to the Generator interface.
type GeneratorFunc func(ctx context.Context) ([]byte, error)

// Generate calls f(ctx).
func (f GeneratorFunc) Generate(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// FishGenerator is the built-in Generator: layered coswave, spinflake and
// flatwave textures that wrap at the tile edges.
type FishGenerator struct {
	size int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewFishGenerator returns a generator of size x size textures.
// A nil rng seeds a fresh PCG source from the runtime's random state.
func NewFishGenerator(size int, rng *rand.Rand) *FishGenerator {
	if size <= 0 {
		size = DefaultSize
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &FishGenerator{size: size, rng: rng}
}

// Size returns the edge length of the generated buffers.
func (g *FishGenerator) Size() int {
	return g.size
}

// Generate implements Generator.
func (g *FishGenerator) Generate(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	f, err := fish.New(g.rng, g.size, g.size)
	if err != nil {
		return nil, err
	}
	Logger().Debug("tilefish: fish synthesized", "size", g.size, "layers", f.Layers())
	return f.Render(), nil
}
