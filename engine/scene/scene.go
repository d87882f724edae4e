package scene

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/camera"
	"github.com/Carmen-Shannon/bridgeworks/engine/game_object"
	"github.com/Carmen-Shannon/bridgeworks/engine/light"
	"github.com/Carmen-Shannon/bridgeworks/engine/renderer"
)

// ErrNoRenderer is returned by Render when no renderer is attached.
var ErrNoRenderer = errors.New("scene has no renderer")

// ErrNoCamera is returned by Render and Frame when no camera is attached.
var ErrNoCamera = errors.New("scene has no camera")

// Scene holds a scene graph root with the lights, background, fog, camera and renderer needed to draw it.
// Scenes can be hot-swapped via the Active flag to switch between different views.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// SetRenderer replaces the scene's renderer.
	//
	// Parameters:
	//   - r: the new renderer
	SetRenderer(r renderer.Renderer)

	// Root returns the group every object of the scene hangs from.
	//
	// Returns:
	//   - game_object.GameObject: the root group
	Root() game_object.GameObject

	// Add attaches objects to the root group in order.
	//
	// Parameters:
	//   - objs: the objects to attach
	//
	// Returns:
	//   - error: the scene graph ownership error, if any; nothing is attached on error
	Add(objs ...game_object.GameObject) error

	// Count returns the number of enabled meshes reachable from the root.
	//
	// Returns:
	//   - int: the mesh count
	Count() int

	// AddLight adds a light source to the scene.
	//
	// Parameters:
	//   - l: the Light to add
	AddLight(l light.Light)

	// RemoveLight removes a light source from the scene by reference.
	//
	// Parameters:
	//   - l: the Light to remove
	RemoveLight(l light.Light)

	// Lights returns all lights currently registered in the scene.
	//
	// Returns:
	//   - []light.Light: the scene's light list
	Lights() []light.Light

	// Background returns the clear color.
	Background() common.Color

	// SetBackground sets the clear color.
	//
	// Parameters:
	//   - c: the new clear color
	SetBackground(c common.Color)

	// Fog returns a copy of the fog settings, or nil when fog is off.
	Fog() *renderer.Fog

	// SetFog replaces the fog settings; nil turns fog off.
	//
	// Parameters:
	//   - f: the new fog
	SetFog(f *renderer.Fog)

	// Frame updates the camera and flattens the graph into a renderer frame.
	// Disabled nodes hide their whole subtree.
	//
	// Returns:
	//   - *renderer.Frame: the frame
	//   - error: ErrNoCamera when no camera is attached
	Frame() (*renderer.Frame, error)

	// Render builds a frame and hands it to the renderer.
	//
	// Returns:
	//   - error: ErrNoCamera, ErrNoRenderer or the renderer's error
	Render() error
}

type scene struct {
	mu *sync.Mutex

	name   string
	active bool

	cam camera.Camera
	rdr renderer.Renderer

	root   game_object.GameObject
	lights []light.Light

	background common.Color
	fog        *renderer.Fog
}

var _ Scene = &scene{}

// NewScene creates a new Scene with an empty root group and a white background.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.Mutex{},
		name:       "scene",
		active:     true,
		root:       game_object.NewGameObject(game_object.WithName("root")),
		background: common.ColorFromHex(0xffffff),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rdr
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rdr = r
}

func (s *scene) Root() game_object.GameObject {
	return s.root
}

func (s *scene) Add(objs ...game_object.GameObject) error {
	return s.root.Add(objs...)
}

func (s *scene) Count() int {
	n := 0
	s.root.Traverse(func(g game_object.GameObject) bool {
		if !g.Enabled() {
			return false
		}
		if g.Kind() == game_object.KindMesh {
			n++
		}
		return true
	})
	return n
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) Background() common.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

func (s *scene) SetBackground(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *scene) Fog() *renderer.Fog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fog == nil {
		return nil
	}
	f := *s.fog
	return &f
}

func (s *scene) SetFog(f *renderer.Fog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f == nil {
		s.fog = nil
		return
	}
	cp := *f
	s.fog = &cp
}

func (s *scene) Frame() (*renderer.Frame, error) {
	cam := s.Camera()
	if cam == nil {
		return nil, ErrNoCamera
	}
	cam.Update()

	f := &renderer.Frame{
		ViewProjection: cam.ViewProjectionMatrix(),
		Eye:            cam.Position(),
		Background:     s.Background(),
		Fog:            s.Fog(),
		Lights:         s.Lights(),
	}

	var identity [16]float32
	common.Identity(identity[:])
	collect(s.root, identity, &f.Items)
	return f, nil
}

// collect appends every enabled mesh under g, composing world matrices on the way down
// instead of walking back to the root for each node.
func collect(g game_object.GameObject, parent [16]float32, items *[]renderer.Item) {
	if !g.Enabled() {
		return
	}
	local := g.LocalMatrix()
	var world [16]float32
	common.Mul4(world[:], parent[:], local[:])

	if g.Kind() == game_object.KindMesh && g.Model() != nil && g.Material() != nil {
		*items = append(*items, renderer.Item{
			Model:         g.Model(),
			Material:      g.Material(),
			World:         world,
			CastShadow:    g.CastShadow(),
			ReceiveShadow: g.ReceiveShadow(),
		})
	}
	for _, c := range g.Children() {
		collect(c, world, items)
	}
}

func (s *scene) Render() error {
	r := s.Renderer()
	if r == nil {
		return ErrNoRenderer
	}
	f, err := s.Frame()
	if err != nil {
		return err
	}
	return r.Render(f)
}
