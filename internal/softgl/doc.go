// Package softgl is a small software 3D renderer for the field view.
//
// Pipeline (fixed):
//
//	Scene → Transform → Projection → Clipping → Rasterization → Target.
//
// A scene holds triangle meshes (flat shaded or wireframe) and point clouds (depth
// tested splats, or additive splats without depth writes). The renderer draws into a
// caller-provided Target and does not allocate in the render hot path once its depth
// buffer is sized.
//
// Camera.Ray turns a viewport position back into a world-space ray so pointer input
// can be projected onto a plane.
package softgl
