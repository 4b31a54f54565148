// trophy - Terminal 3D Model Viewer
// View OBJ and GLB files in your terminal with full 3D rendering.
//
// Controls:
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right (Q rolls left, E rolls right)
//	Space       - Apply random impulse
//	R           - Reset rotation
//	T           - Toggle texture on/off
//	X           - Toggle wireframe mode (x-ray)
//	L           - Light positioning mode (move mouse, click to set, Esc to cancel)
//	?           - Toggle HUD overlay (FPS, filename, poly count, mode status)
//	+/-         - Adjust zoom
//	Esc         - Quit (or cancel light mode)
package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder for embedded GLTF textures
	_ "image/png"  // register PNG decoder for embedded GLTF textures
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"rasterkit/pkg/math3d"
	"rasterkit/pkg/models"
	"rasterkit/pkg/render"
	"rasterkit/pkg/scene"
)

var (
	texturePath string
	targetFPS   int
	bgColor     string
)

func main() {
	root := &cobra.Command{
		Use:           "trophy <model.obj|model.glb>",
		Short:         "Terminal 3D model viewer",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
	root.Flags().StringVar(&texturePath, "texture", "", "Path to texture image (PNG/JPG)")
	root.Flags().IntVar(&targetFPS, "fps", 60, "Target FPS")
	root.Flags().StringVar(&bgColor, "bg", "30,30,40", "Background color (R,G,B)")

	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

// RotationAxis tracks position and velocity for one rotation axis with spring decay
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with harmonica spring for smooth velocity decay
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0 using spring
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds rotation with harmonica spring physics
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// RenderMode controls how the mesh is drawn
type RenderMode int

const (
	RenderModeTextured  RenderMode = iota // Textured with per-vertex lighting
	RenderModeFlat                        // Flat shading (no texture)
	RenderModeWireframe                   // Wireframe only
)

// ViewState holds all view-related settings (UI state, not library code)
type ViewState struct {
	TextureEnabled bool        // Whether to show textures
	RenderMode     RenderMode  // Current render mode
	LightMode      bool        // Whether in light positioning mode
	LightDir       math3d.Vec3 // Current light direction
	PendingLight   math3d.Vec3 // Light direction while positioning
	ShowHUD        bool        // Whether to show the HUD overlay
}

// NewViewState creates default view state
func NewViewState() *ViewState {
	return &ViewState{
		TextureEnabled: true,
		RenderMode:     RenderModeTextured,
		ShowHUD:        true,
		LightDir:       math3d.V3(0.5, 1, 0.3).Normalize(),
	}
}

// HUD renders an overlay with model info and controls.
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time

	fpsStyle   lipgloss.Style
	titleStyle lipgloss.Style
	polyStyle  lipgloss.Style
	modeStyle  lipgloss.Style
	hintStyle  lipgloss.Style
	lightStyle lipgloss.Style
}

// NewHUD creates a new HUD with fixed ANSI palette styles. The profile
// argument is not used; the styles are not narrowed to it.
func NewHUD(filename string, polyCount int, profile colorprofile.Profile) *HUD {
	bg := lipgloss.Color("0")
	style := func(fg string, bold bool) lipgloss.Style {
		s := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(fg)).Padding(0, 1)
		if bold {
			s = s.Bold(true)
		}
		return s
	}
	return &HUD{
		filename:   filename,
		polyCount:  polyCount,
		fpsTime:    time.Now(),
		fpsStyle:   style("10", false),
		titleStyle: style("15", true),
		polyStyle:  style("14", true),
		modeStyle:  style("15", false),
		hintStyle:  style("11", false).Faint(true),
		lightStyle: style("11", true),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

func moveTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

// Render draws the HUD overlay directly to the terminal using ANSI
// cursor positioning; lipgloss only styles the text that goes at each
// position.
func (h *HUD) Render(width, height int, viewState *ViewState) {
	const clearLine = "\x1b[2K"

	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if viewState.LightMode {
		msg := h.lightStyle.Render("◉ LIGHT MODE - move mouse to position, click to set, Esc to cancel")
		col := max((width-runewidth.StringWidth(msg))/2, 1)
		fmt.Print(moveTo(height, col) + msg)
		return
	}

	if !viewState.ShowHUD {
		return
	}

	fpsStr := h.fpsStyle.Render(fmt.Sprintf("%.0f FPS", h.fps))
	fmt.Print(moveTo(1, 1) + fpsStr)

	titleStr := h.titleStyle.Render(h.filename)
	titleCol := max((width-runewidth.StringWidth(titleStr))/2, 1)
	fmt.Print(moveTo(1, titleCol) + titleStr)

	polyStr := h.polyStyle.Render(fmt.Sprintf("%d polys", h.polyCount))
	polyCol := max(width-runewidth.StringWidth(polyStr)-1, 1)
	fmt.Print(moveTo(1, polyCol) + polyStr)

	checkTex := "[ ]"
	if viewState.TextureEnabled && viewState.RenderMode != RenderModeWireframe {
		checkTex = "[x]"
	}
	checkWire := "[ ]"
	if viewState.RenderMode == RenderModeWireframe {
		checkWire = "[x]"
	}
	modeStr := h.modeStyle.Render(fmt.Sprintf("%s Texture  %s X-Ray (wireframe)", checkTex, checkWire))
	fmt.Print(moveTo(height, 1) + modeStr)

	hint := h.hintStyle.Render("L: position light")
	hintCol := max(width-runewidth.StringWidth(hint)-1, 1)
	fmt.Print(moveTo(height, hintCol) + hint)
}

// ScreenToLightDir converts a screen position to a light direction.
// Maps screen coords to a hemisphere above the object.
func (v *ViewState) ScreenToLightDir(screenX, screenY, width, height int) math3d.Vec3 {
	nx := (float64(screenX)/float64(width))*2 - 1
	ny := (float64(screenY)/float64(height))*2 - 1

	lenSq := nx*nx + ny*ny
	if lenSq > 1 {
		length := math.Sqrt(lenSq)
		nx /= length
		ny /= length
		lenSq = 1
	}

	nz := math.Sqrt(1 - lenSq)
	return math3d.V3(nx, -ny, nz).Normalize()
}

func loadMesh(modelPath string) (*models.Mesh, *render.Texture, error) {
	ext := strings.ToLower(filepath.Ext(modelPath))
	switch ext {
	case ".glb", ".gltf":
		mesh, textures, err := models.LoadGLTFWithTextures(modelPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		for _, data := range textures {
			if len(data) == 0 {
				continue
			}
			if tex, err := decodeEmbeddedTexture(data); err == nil {
				return mesh, tex, nil
			}
		}
		return mesh, nil, nil
	case ".obj":
		mesh, err := models.LoadOBJ(modelPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		return mesh, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported format: %s (use .obj or .glb)", ext)
	}
}

func run(modelPath string) error {
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)
	background := render.RGB{R: bgR, G: bgG, B: bgB}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	profile := colorprofile.Detect(os.Stdout, os.Environ())

	fbWidth, fbHeight := width, height*2
	renderer, err := render.NewRenderer(fbWidth, fbHeight)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	termRenderer := scene.NewTerminalRenderer(renderer, profile)

	camera := scene.NewCamera()
	camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
	camera.SetFOV(math.Pi / 3)
	camera.SetClipPlanes(0.1, 100)
	cameraZ := 5.0
	camera.SetPosition(math3d.V3(0, 0, -cameraZ))
	camera.LookAt(math3d.Zero3())

	wireframe := scene.NewWireframe(camera, renderer)

	mesh, embeddedTex, err := loadMesh(modelPath)
	if err != nil {
		return err
	}

	var texture *render.Texture
	if texturePath != "" {
		texture, err = scene.LoadTexture(texturePath)
		if err != nil {
			fmt.Printf("Warning: could not load texture: %v\n", err)
		}
	}
	if texture == nil && embeddedTex != nil {
		texture = embeddedTex
	}
	if texture == nil {
		texture, err = scene.NewCheckerTexture(64, 64, 8, render.RGB{R: 200, G: 200, B: 200}, render.RGB{R: 100, G: 100, B: 100})
		if err != nil {
			return fmt.Errorf("build fallback texture: %w", err)
		}
	}

	fmt.Printf("Loaded: %s (%d vertices, %d triangles)\n", filepath.Base(modelPath), mesh.VertexCount(), mesh.TriangleCount())

	hud := NewHUD(filepath.Base(modelPath), mesh.TriangleCount(), profile)

	mesh.CalculateBounds()
	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		scale := 2.0 / maxDim
		transform := math3d.Scale(math3d.V3(scale, scale, scale)).Mul(math3d.Translate(center.Scale(-1)))
		mesh.Transform(transform)
	}

	rotation := NewRotationState(targetFPS)
	viewState := NewViewState()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const torqueStrength = 3.0

	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				fbWidth, fbHeight = width, height*2
				if err := renderer.Init(fbWidth, fbHeight); err != nil {
					renderer, _ = render.NewRenderer(fbWidth, fbHeight)
					termRenderer = scene.NewTerminalRenderer(renderer, profile)
					wireframe = scene.NewWireframe(camera, renderer)
				}
				camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"):
					if viewState.LightMode {
						viewState.LightMode = false
					} else {
						cancel()
						return
					}
				case ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("r"):
					rotation.Reset()
					cameraZ = 5.0
					camera.SetPosition(math3d.V3(0, 0, -cameraZ))
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("space"):
					rotation.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
				case ev.MatchString("+", "="):
					cameraZ = math.Max(1, cameraZ-0.5)
					camera.SetPosition(math3d.V3(0, 0, -cameraZ))
				case ev.MatchString("-", "_"):
					cameraZ = math.Min(20, cameraZ+0.5)
					camera.SetPosition(math3d.V3(0, 0, -cameraZ))
				case ev.MatchString("t"):
					viewState.TextureEnabled = !viewState.TextureEnabled
				case ev.MatchString("x"):
					if viewState.RenderMode == RenderModeWireframe {
						viewState.RenderMode = RenderModeTextured
					} else {
						viewState.RenderMode = RenderModeWireframe
					}
				case ev.MatchString("l"):
					viewState.LightMode = true
					viewState.PendingLight = viewState.LightDir
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					viewState.ShowHUD = !viewState.ShowHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
				}

			case uv.MouseClickEvent:
				if viewState.LightMode {
					viewState.LightDir = viewState.PendingLight
					viewState.LightMode = false
				} else {
					mouseDown = true
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseReleaseEvent:
				if !viewState.LightMode {
					mouseDown = false
				}

			case uv.MouseMotionEvent:
				if viewState.LightMode {
					viewState.PendingLight = viewState.ScreenToLightDir(ev.X, ev.Y, width, height)
				} else if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraZ = math.Max(1, cameraZ-0.5)
				case uv.MouseWheelDown:
					cameraZ = math.Min(20, cameraZ+0.5)
				}
				camera.SetPosition(math3d.V3(0, 0, -cameraZ))
			}
		}
	}()

	targetDuration := time.Second / time.Duration(targetFPS)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		rotation.ApplyImpulse(
			inputTorque.pitch*dt,
			inputTorque.yaw*dt,
			inputTorque.roll*dt,
		)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9
		rotation.Update()

		transform := math3d.RotateX(rotation.Pitch.Position).
			Mul(math3d.RotateY(rotation.Yaw.Position)).
			Mul(math3d.RotateZ(rotation.Roll.Position))

		if err := renderer.ClearBuffers(); err != nil {
			cleanup()
			return fmt.Errorf("clear buffers: %w", err)
		}
		fillBackground(renderer, background)

		lightDir := viewState.LightDir
		if viewState.LightMode {
			lightDir = viewState.PendingLight
		}
		light := scene.NewDirectionalLight(lightDir, 1.0)

		switch viewState.RenderMode {
		case RenderModeWireframe:
			renderer.SetMatrices(camera.ViewProjectionMatrix().Mul(transform), camera.Position)
			drawMeshWireframe(wireframe, mesh, transform)
		case RenderModeFlat:
			if err := scene.DrawMesh(renderer, camera, mesh, transform, nil, &light, true); err != nil {
				cleanup()
				return fmt.Errorf("draw mesh: %w", err)
			}
		default:
			if viewState.TextureEnabled {
				if err := scene.DrawMesh(renderer, camera, mesh, transform, texture, &light, true); err != nil {
					cleanup()
					return fmt.Errorf("draw mesh: %w", err)
				}
			} else if err := scene.DrawMesh(renderer, camera, mesh, transform, nil, &light, true); err != nil {
				cleanup()
				return fmt.Errorf("draw mesh: %w", err)
			}
		}

		term.Draw(termRenderer)
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, viewState)

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// drawMeshWireframe draws every edge of every face of mesh, transformed by model.
func drawMeshWireframe(w *scene.Wireframe, mesh *models.Mesh, model math3d.Mat4) {
	for _, face := range mesh.Faces {
		v0 := model.MulVec3(mesh.Vertices[face.V[0]].Position)
		v1 := model.MulVec3(mesh.Vertices[face.V[1]].Position)
		v2 := model.MulVec3(mesh.Vertices[face.V[2]].Position)
		w.DrawLine3D(v0, v1, scene.ColorGreen)
		w.DrawLine3D(v1, v2, scene.ColorGreen)
		w.DrawLine3D(v2, v0, scene.ColorGreen)
	}
}

// fillBackground paints every pixel of renderer's color buffer with c,
// bypassing the depth test (ClearBuffers already reset depth and color
// to opaque black, so this only matters when the background isn't black).
func fillBackground(r *render.Renderer, c render.RGB) {
	if c == (render.RGB{}) {
		return
	}
	for y := range r.Height() {
		for x := range r.Width() {
			r.SetDebugPixel(x, y, c)
		}
	}
}

func decodeEmbeddedTexture(data []byte) (*render.Texture, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return scene.TextureFromImage(img)
}
