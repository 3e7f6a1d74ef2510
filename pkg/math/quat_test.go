package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := math32.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)
	if math32.Abs(length-1.0) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, math32.Pi/2)

	// At t=0, should equal q1 exactly
	result0 := q1.Slerp(q2, 0)
	if result0 != q1 {
		t.Errorf("Slerp at t=0 should equal q1")
	}

	// At t=1, should equal q2 exactly
	result1 := q1.Slerp(q2, 1)
	if result1 != q2 {
		t.Errorf("Slerp at t=1 should equal q2")
	}

	// At t=0.5, should be the geodesic midpoint (45 degree rotation)
	result5 := q1.Slerp(q2, 0.5)
	expectedW := math32.Cos(math32.Pi / 8)
	if math32.Abs(result5.W-expectedW) > 0.001 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, result5.W)
	}
}

func TestQuatRotate(t *testing.T) {
	// 90 degrees around Z maps +X to +Y
	q := QuatFromAxisAngle(Vec3{Z: 1}, math32.Pi/2)
	v := q.Rotate(Vec3{X: 1})
	if v.Distance(Vec3{Y: 1}) > 0.0001 {
		t.Errorf("Rotate: expected (0,1,0), got %v", v)
	}
}

func TestQuatMulInverse(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0.267, Y: 0.535, Z: 0.802}, 1.1)
	id := q.Mul(q.Inverse())
	if math32.Abs(id.W-1) > 0.0001 || math32.Abs(id.X) > 0.0001 {
		t.Errorf("q * q^-1 should be identity, got %+v", id)
	}
}

func TestQuatBetween(t *testing.T) {
	a := Vec3{X: 1}
	b := Vec3{Y: 1}
	q := QuatBetween(a, b)
	if q.Rotate(a).Distance(b) > 0.0001 {
		t.Errorf("QuatBetween should map a to b, got %v", q.Rotate(a))
	}

	// Identical directions
	q = QuatBetween(a, a)
	if q != QuatIdentity() {
		t.Errorf("QuatBetween(a,a) should be identity, got %+v", q)
	}

	// Opposite directions still produce a valid half-turn
	q = QuatBetween(a, a.Scale(-1))
	if !q.IsFinite() {
		t.Errorf("QuatBetween of opposite vectors produced non-finite %+v", q)
	}
	if q.Rotate(a).Distance(a.Scale(-1)) > 0.0001 {
		t.Errorf("QuatBetween of opposite vectors should map a to -a, got %v", q.Rotate(a))
	}
}

func TestQuatToMat4RoundTrip(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0.577, Y: 0.577, Z: 0.577}, 0.9)
	back := QuatFromMat3x3(q.ToMat4().Mat3x3())

	// q and -q encode the same rotation
	if back.Dot(q) < 0 {
		back = Quat{X: -back.X, Y: -back.Y, Z: -back.Z, W: -back.W}
	}
	if math32.Abs(back.X-q.X) > 0.0001 || math32.Abs(back.Y-q.Y) > 0.0001 ||
		math32.Abs(back.Z-q.Z) > 0.0001 || math32.Abs(back.W-q.W) > 0.0001 {
		t.Errorf("matrix round trip: expected %+v, got %+v", q, back)
	}
}
