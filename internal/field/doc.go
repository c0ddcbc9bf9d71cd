// Package field implements the ambient particle field: a fixed N×N lattice of points
// whose heights and colours are recomputed every frame from a travelling wave and the
// pointer position.
//
// Update model (per point, base position (bx, by)):
//
//	wave     = A·0.6·sin(1.2·bx + v·t) + A·0.4·cos(1.4·by + 0.7·v·t) + A·0.3·sin(0.8·(bx+by) + 0.5·v·t)
//	infl     = max(0, 1 - dist(base, pointer)/R)
//	target z = wave + infl²·K
//	z       += (target z - z)·L
//	colour  += (lerp(C0, C1, infl) - colour)·min(M·L, 1)
//
// The Animator owns its position and colour buffers and mutates them in place. A
// consumer reads them through Buffers after Update returns and acknowledges with
// Uploaded. An Animator must be driven from a single goroutine.
package field
