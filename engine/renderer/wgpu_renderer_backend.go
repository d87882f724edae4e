package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed blit.wgsl
var blitSource string

// wgpuRendererBackend uploads each CPU frame into a texture and draws it over the swapchain
// with a fullscreen triangle.
type wgpuRendererBackend struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	presentMode   wgpu.PresentMode

	bindGroupLayout *wgpu.BindGroupLayout
	pipeline        *wgpu.RenderPipeline
	sampler         *wgpu.Sampler

	// Size-dependent frame texture, recreated by ConfigureSurface.
	width, height int
	frameTexture  *wgpu.Texture
	frameView     *wgpu.TextureView
	bindGroup     *wgpu.BindGroup
}

var _ RendererBackend = &wgpuRendererBackend{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (*wgpuRendererBackend, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("window has no surface descriptor")
	}
	runtime.LockOSThread()
	b := &wgpuRendererBackend{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		return nil, errors.New("surface reports no supported formats")
	}
	b.surfaceFormat = capabilities.Formats[0]
	for _, f := range capabilities.Formats {
		if isSRGB(f) {
			b.surfaceFormat = f
			break
		}
	}

	if err := b.createPipeline(); err != nil {
		return nil, err
	}
	return b, nil
}

// isSRGB reports whether writes to the format are encoded from linear to sRGB by the hardware.
func isSRGB(f wgpu.TextureFormat) bool {
	return f == wgpu.TextureFormatBGRA8UnormSrgb || f == wgpu.TextureFormatRGBA8UnormSrgb
}

// frameFormat picks the upload texture format so sRGB bytes reach the screen unchanged:
// decode on sample when the surface re-encodes on write, and pass through otherwise.
func (b *wgpuRendererBackend) frameFormat() wgpu.TextureFormat {
	if isSRGB(b.surfaceFormat) {
		return wgpu.TextureFormatRGBA8UnormSrgb
	}
	return wgpu.TextureFormatRGBA8Unorm
}

func (b *wgpuRendererBackend) createPipeline() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "blit.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: blitSource,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to compile blit shader: %w", err)
	}

	textureEntry := wgpu.BindGroupLayoutEntry{Binding: 0, Visibility: wgpu.ShaderStageFragment}
	textureEntry.Texture.SampleType = wgpu.TextureSampleTypeFloat
	textureEntry.Texture.ViewDimension = wgpu.TextureViewDimension2D
	samplerEntry := wgpu.BindGroupLayoutEntry{Binding: 1, Visibility: wgpu.ShaderStageFragment}
	samplerEntry.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	b.bindGroupLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Blit Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{textureEntry, samplerEntry},
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group layout: %w", err)
	}

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Blit",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.bindGroupLayout},
	})
	if err != nil {
		return err
	}

	b.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Blit Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    b.surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create blit pipeline: %w", err)
	}

	// The frame is already at surface resolution, so nearest sampling keeps pixels exact.
	b.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Blit Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	return err
}

func (b *wgpuRendererBackend) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return nil
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseFrame()
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "Frame Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		Format:        b.frameFormat(),
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Blit Bind Group",
		Layout: b.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: b.sampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return err
	}

	b.width, b.height = width, height
	b.frameTexture, b.frameView, b.bindGroup = tex, view, bg
	return nil
}

func (b *wgpuRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackend) Present(img *image.RGBA) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameTexture == nil {
		return errors.New("surface is not configured")
	}
	if img.Bounds().Dx() != b.width || img.Bounds().Dy() != b.height {
		return fmt.Errorf("frame is %dx%d but surface is %dx%d", img.Bounds().Dx(), img.Bounds().Dy(), b.width, b.height)
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  b.frameTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		img.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(img.Stride),
			RowsPerImage: uint32(b.height),
		},
		&wgpu.Extent3D{
			Width:              uint32(b.width),
			Height:             uint32(b.height),
			DepthOrArrayLayers: 1,
		},
	)

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	pass.SetPipeline(b.pipeline)
	pass.SetBindGroup(0, b.bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return nil
}

// releaseFrame frees the size-dependent frame texture. Caller must hold the mutex.
func (b *wgpuRendererBackend) releaseFrame() {
	if b.bindGroup != nil {
		b.bindGroup.Release()
		b.bindGroup = nil
	}
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameTexture != nil {
		b.frameTexture.Release()
		b.frameTexture = nil
	}
}

func (b *wgpuRendererBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrame()
	if b.sampler != nil {
		b.sampler.Release()
	}
	if b.pipeline != nil {
		b.pipeline.Release()
	}
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}
