package softgl

import "testing"

func testCamera() Camera {
	return Camera{
		Position: V3(0, 6, 8),
		Target:   V3(0, 0, 0),
		Up:       V3(0, 1, 0),
		FOVYRad:  0.9,
		Near:     0.05,
		Far:      100,
	}
}

// toScreen runs p through the same transform chain as the renderer.
func toScreen(t *testing.T, c Camera, p Vec3, w, h int) (x, y int) {
	t.Helper()
	mvp := Mat4Mul(c.Projection(Aspect(w, h)), c.View())
	clip := Mat4MulV4(mvp, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	ndc, ok := clipToNDC(clip)
	if !ok || clip.W <= 0 {
		t.Fatalf("%+v is behind the camera", p)
	}
	return ndcToScreen(ndc, w, h)
}

func TestRayRoundTrip(t *testing.T) {
	const w, h = 320, 200
	cam := testCamera()
	for _, p := range []Vec3{V3(0, 0, 0), V3(2, 0, -1.5), V3(-3, 0, 2)} {
		x, y := toScreen(t, cam, p, w, h)
		nx, ny := ScreenToNDC(x, y, w, h)
		hit, ok := cam.Ray(nx, ny, Aspect(w, h)).IntersectPlaneY(0)
		if !ok {
			t.Fatalf("ray through %d,%d missed the plane", x, y)
		}
		// One pixel of rounding at this distance is well under 0.1 world units.
		if absF(hit.X-p.X) > 0.1 || absF(hit.Z-p.Z) > 0.1 {
			t.Fatalf("hit = %+v, want near %+v", hit, p)
		}
	}
}

func TestRayMissesPlaneAbove(t *testing.T) {
	cam := testCamera()
	// Straight up through the top edge of the view points above the horizon.
	cam.Target = V3(0, 6, 0)
	if _, ok := cam.Ray(0, 1, 1).IntersectPlaneY(0); ok {
		t.Fatal("expected a miss for a ray pointing away from the plane")
	}
}

func TestOrbitPitchSign(t *testing.T) {
	var cam Camera
	o := OrbitController{Radius: 10, MinPitch: -1.4, MaxPitch: -0.1}
	o.SetPitch(0.5)
	if o.Pitch != -0.1 {
		t.Fatalf("pitch = %v, want clamped to -0.1", o.Pitch)
	}
	o.SetPitch(-0.8)
	o.Apply(&cam)
	if !(cam.Position.Y > 0) || absF(Len(cam.Position)-10) > 1e-4 {
		t.Fatalf("camera at %+v, want above the plane at radius 10", cam.Position)
	}
}
