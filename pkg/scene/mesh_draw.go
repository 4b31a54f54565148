package scene

import (
	"rasterkit/pkg/math3d"
	"rasterkit/pkg/models"
	"rasterkit/pkg/render"
)

// DrawMesh transforms mesh with model, combines it with the camera's
// view-projection matrix, and submits every face to the renderer's
// geometry stage. It is the usual way a collaborator feeds loaded
// geometry into the rasterizer core: DrawTriangle3D itself only knows
// about three vertices and a texture, never about meshes or cameras.
//
// If tex is nil, faces are drawn with whiteTexture so the model is
// still visible (flat per-vertex color via lighting) on meshes with no
// baked texture.
func DrawMesh(r *render.Renderer, cam *Camera, mesh *models.Mesh, model math3d.Mat4, tex *render.Texture, light *DirectionalLight, cullFrustum bool) error {
	if tex == nil {
		tex = whiteTexture()
	}

	mvp := cam.ViewProjectionMatrix().Mul(model)

	if cullFrustum {
		frustum := cam.GetFrustum()
		bounds := NewAABB(mesh.BoundsMin, mesh.BoundsMax).Transform(model)
		if !frustum.IntersectAABB(bounds) {
			return nil
		}
	}

	r.SetMatrices(mvp, cam.Position)

	var intensities []float64
	if light != nil {
		normals := make([]math3d.Vec3, len(mesh.Vertices))
		for i, v := range mesh.Vertices {
			normals[i] = v.Normal
		}
		intensities = LightVertices(normals, *light)
	}

	for _, face := range mesh.Faces {
		var verts [3]render.Vertex
		for i, vi := range face.V {
			mv := mesh.Vertices[vi]
			v := render.Vertex{Position: mv.Position, UV: mv.UV}
			if intensities != nil {
				v.Intensity = intensities[vi]
			} else {
				v.Intensity = 1
			}
			verts[i] = v
		}
		if err := r.DrawTriangle3D(verts[0], verts[1], verts[2], tex); err != nil {
			return err
		}
	}
	return nil
}

// whiteTex is a shared 1x1 opaque white texture for faces drawn
// without a material.
var whiteTex, _ = render.NewTexture(1, 1, []byte{255, 255, 255, 255})

func whiteTexture() *render.Texture {
	return whiteTex
}
