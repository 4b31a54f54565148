package scene

import "rasterkit/pkg/math3d"

// DirectionalLight is a single distant light source, defined by the
// direction light travels (not the direction toward the light).
type DirectionalLight struct {
	Direction math3d.Vec3 // normalized, points from the light toward the scene
	Intensity float64     // scales the Lambert term before the renderer's ambient floor is applied
}

// NewDirectionalLight creates a directional light pointing along dir.
func NewDirectionalLight(dir math3d.Vec3, intensity float64) DirectionalLight {
	return DirectionalLight{Direction: dir.Normalize(), Intensity: intensity}
}

// Lambert computes max(0, -N·L) * Intensity for a surface normal n,
// the classic diffuse term for a distant light. The result is meant to
// be fed into render.Vertex.Intensity and is not clamped to the
// renderer's ambient floor — that floor is applied once, inside the
// core's per-pixel lighting hook, not per light.
func (l DirectionalLight) Lambert(n math3d.Vec3) float64 {
	d := -n.Normalize().Dot(l.Direction)
	if d < 0 {
		d = 0
	}
	return d * l.Intensity
}

// LightVertices computes a per-vertex Lambert intensity against a
// single directional light for every normal in normals. Combining
// multiple lights is left to the caller.
func LightVertices(normals []math3d.Vec3, light DirectionalLight) []float64 {
	out := make([]float64, len(normals))
	for i, n := range normals {
		out[i] = light.Lambert(n)
	}
	return out
}
