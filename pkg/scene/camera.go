// Package scene holds the collaborator-side pieces the rasterizer core
// deliberately stays ignorant of: the camera, frustum culling, a
// debug wireframe overlay, and terminal presentation of a finished
// frame. None of it is reachable from pkg/render — everything here
// calls down into the core, never the other way around.
package scene

import (
	"math"

	"rasterkit/pkg/math3d"
)

// Camera represents a 3D camera with position and orientation. It owns
// nothing the core renderer needs directly; a collaborator reads
// ViewProjectionMatrix and Position each frame and hands them to
// render.Renderer.SetMatrices.
type Camera struct {
	Position math3d.Vec3

	Pitch float64 // rotation around the local right axis (look up/down)
	Yaw   float64 // rotation around the world up axis (look left/right)
	Roll  float64 // rotation around the forward axis (tilt)

	FOV         float64
	AspectRatio float64
	Near        float64
	Far         float64

	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
}

// NewCamera creates a new camera with default settings.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.V3(0, 0, -10),
		FOV:         math.Pi / 3,
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         1000,
		viewDirty:   true,
		projDirty:   true,
	}
}

func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

func (c *Camera) SetRotation(pitch, yaw, roll float64) {
	c.Pitch, c.Yaw, c.Roll = pitch, yaw, roll
	c.viewDirty = true
}

func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near, c.Far = near, far
	c.projDirty = true
}

// Forward returns the world-space direction the camera is looking,
// which maps to +Z in camera space under this core's projection
// convention.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.V3(
		math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// Right returns the camera's local right vector.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.Up().Cross(c.Forward()).Normalize()
}

// Up returns the camera's local up vector, already tilted by Roll.
func (c *Camera) Up() math3d.Vec3 {
	return math3d.Rotate(c.Forward(), c.Roll).MulVec3Dir(c.Forward().Cross(c.Right()))
}

func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.computeViewMatrix()
		c.viewDirty = false
	}
	return c.viewMatrix
}

func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.viewDirty || c.projDirty {
		_ = c.ViewMatrix()
		_ = c.ProjectionMatrix()
		c.viewProjMatrix = c.projMatrix.Mul(c.viewMatrix)
	}
	return c.viewProjMatrix
}

// computeViewMatrix builds the view matrix from an up vector rolled
// around the forward axis, then defers to math3d.LookAt rather than
// re-deriving the same rotate-then-translate algebra a second time.
func (c *Camera) computeViewMatrix() {
	forward := c.Forward()
	up := math3d.Rotate(forward, c.Roll).MulVec3Dir(math3d.Up())
	c.viewMatrix = math3d.LookAt(c.Position, c.Position.Add(forward), up)
}

func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
	c.viewDirty = true
}

func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
	c.viewDirty = true
}

func (c *Camera) MoveUp(distance float64) {
	c.Position = c.Position.Add(math3d.Up().Scale(distance))
	c.viewDirty = true
}

// Rotate adjusts pitch/yaw/roll by the given deltas, clamping pitch
// away from the poles to avoid a gimbal-lock flip.
func (c *Camera) Rotate(deltaPitch, deltaYaw, deltaRoll float64) {
	c.Pitch += deltaPitch
	c.Yaw += deltaYaw
	c.Roll += deltaRoll

	const maxPitch = math.Pi/2 - 0.01
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}

	c.viewDirty = true
}

// LookAt points the camera at a target and derives pitch/yaw from the
// resulting direction so subsequent Rotate calls stay consistent.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	c.Pitch = math.Asin(clampUnit(dir.Y))
	c.Yaw = math.Atan2(dir.X, dir.Z)
	c.Roll = 0
	c.viewDirty = true
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// WorldToScreen transforms a world point to screen coordinates using
// this core's viewport mapping, for collaborator-side uses that don't
// go through DrawTriangle3D (HUD reticles, debug markers).
// Returns (screenX, screenY, ndcZ, visible).
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clipPos := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))
	if clipPos.W <= 0.01 {
		return 0, 0, 0, false
	}

	ndc := clipPos.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < 0 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight)
	depth = ndc.Z
	return x, y, depth, true
}
