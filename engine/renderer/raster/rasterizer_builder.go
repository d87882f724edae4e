package raster

// RasterizerBuilderOption is a functional option for configuring a Rasterizer.
type RasterizerBuilderOption func(*rasterizer)

// WithSupersample renders at factor times the output size in each axis and filters down on resolve.
//
// Parameters:
//   - factor: 1 disables supersampling
//
// Returns:
//   - RasterizerBuilderOption: option function to apply
func WithSupersample(factor int) RasterizerBuilderOption {
	return func(r *rasterizer) {
		r.supersample = max(factor, 1)
	}
}

// WithWorkers sets how many pool workers render bands. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the worker count (minimum 1)
//
// Returns:
//   - RasterizerBuilderOption: option function to apply
func WithWorkers(n int) RasterizerBuilderOption {
	return func(r *rasterizer) {
		r.workers = max(n, 1)
	}
}

// WithShadowMapSize overrides the shadow map resolution of every light.
//
// Parameters:
//   - size: width and height in texels; 0 keeps each light's own setting
//
// Returns:
//   - RasterizerBuilderOption: option function to apply
func WithShadowMapSize(size int) RasterizerBuilderOption {
	return func(r *rasterizer) {
		r.shadowSize = max(size, 0)
	}
}
