package softgl

import "math"

// Scalar is the float type used throughout the renderer.
type Scalar = float32

type Vec3 struct {
	X, Y, Z Scalar
}

type Vec4 struct {
	X, Y, Z, W Scalar
}

// Mat4 is a column-major 4x4 matrix: element (row, col) lives at m[col*4+row].
type Mat4 [16]Scalar

func V3(x, y, z Scalar) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3   { return V3(v.X+o.X, v.Y+o.Y, v.Z+o.Z) }
func (v Vec3) Sub(o Vec3) Vec3   { return V3(v.X-o.X, v.Y-o.Y, v.Z-o.Z) }
func (v Vec3) Mul(s Scalar) Vec3 { return V3(v.X*s, v.Y*s, v.Z*s) }

func Dot(a, b Vec3) Scalar { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func Cross(a, b Vec3) Vec3 {
	return V3(a.Y*b.Z-a.Z*b.Y, a.Z*b.X-a.X*b.Z, a.X*b.Y-a.Y*b.X)
}

func Len(v Vec3) Scalar { return Scalar(math.Sqrt(float64(Dot(v, v)))) }

// Normalize returns v scaled to unit length, or the zero vector for zero input.
func Normalize(v Vec3) Vec3 {
	if l := Len(v); l != 0 {
		return v.Mul(1 / l)
	}
	return Vec3{}
}

func Clamp01(v Scalar) Scalar { return min(max(v, 0), 1) }

// Lerp returns a + (b-a)·t.
func Lerp(a, b, t Scalar) Scalar { return a + (b-a)*t }

func (m Mat4) at(row, col int) Scalar { return m[col*4+row] }

func Mat4Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

func Mat4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum Scalar
			for k := 0; k < 4; k++ {
				sum += a.at(row, k) * b.at(k, col)
			}
			out[col*4+row] = sum
		}
	}
	return out
}

func Mat4MulV4(m Mat4, v Vec4) Vec4 {
	in := [4]Scalar{v.X, v.Y, v.Z, v.W}
	var out [4]Scalar
	for row := 0; row < 4; row++ {
		for k := 0; k < 4; k++ {
			out[row] += m.at(row, k) * in[k]
		}
	}
	return Vec4{X: out[0], Y: out[1], Z: out[2], W: out[3]}
}

func Mat4Translate(v Vec3) Mat4 {
	m := Mat4Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

func Mat4Scale(v Vec3) Mat4 {
	m := Mat4Identity()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// planeRotation rotates by rad in the plane spanned by axes i and j, turning
// axis i toward axis j.
func planeRotation(rad Scalar, i, j int) Mat4 {
	c := Scalar(math.Cos(float64(rad)))
	s := Scalar(math.Sin(float64(rad)))
	m := Mat4Identity()
	m[i*4+i], m[i*4+j] = c, s
	m[j*4+i], m[j*4+j] = -s, c
	return m
}

func Mat4RotateX(rad Scalar) Mat4 { return planeRotation(rad, 1, 2) }
func Mat4RotateY(rad Scalar) Mat4 { return planeRotation(rad, 2, 0) }
func Mat4RotateZ(rad Scalar) Mat4 { return planeRotation(rad, 0, 1) }

// Mat4LookAt builds a right-handed view matrix with the camera looking down -Z.
func Mat4LookAt(eye, target, up Vec3) Mat4 {
	fwd := Normalize(target.Sub(eye))
	right := Normalize(Cross(fwd, up))
	upv := Cross(right, fwd)

	// Each row of the rotation part is one camera axis.
	var m Mat4
	for row, axis := range [3]Vec3{right, upv, fwd.Mul(-1)} {
		m[0*4+row], m[1*4+row], m[2*4+row] = axis.X, axis.Y, axis.Z
		m[3*4+row] = -Dot(axis, eye)
	}
	m[15] = 1
	return m
}

// Mat4Perspective maps view space to clip space with NDC z in [-1, 1].
func Mat4Perspective(fovYRad, aspect, zNear, zFar Scalar) Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	f := 1 / tan32(fovYRad/2)
	depth := 1 / (zNear - zFar)

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (zFar + zNear) * depth
	m[11] = -1
	m[14] = 2 * zFar * zNear * depth
	return m
}

func tan32(v Scalar) Scalar { return Scalar(math.Tan(float64(v))) }
