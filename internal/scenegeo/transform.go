package scenegeo

import "math"

// ApplyPose transforms p by the pose's 4x4 matrix, treating p as a
// homogeneous point (w=1).
func ApplyPose(pose Pose, p [3]float64) [3]float64 {
	m := pose.Matrix
	return [3]float64{
		m[0]*p[0] + m[1]*p[1] + m[2]*p[2] + m[3],
		m[4]*p[0] + m[5]*p[1] + m[6]*p[2] + m[7],
		m[8]*p[0] + m[9]*p[1] + m[10]*p[2] + m[11],
	}
}

// ApplyPoseDirection transforms a direction vector (normal) by the
// pose's rotation block only, ignoring translation.
func ApplyPoseDirection(pose Pose, d [3]float64) [3]float64 {
	m := pose.Matrix
	return [3]float64{
		m[0]*d[0] + m[1]*d[1] + m[2]*d[2],
		m[4]*d[0] + m[5]*d[1] + m[6]*d[2],
		m[8]*d[0] + m[9]*d[1] + m[10]*d[2],
	}
}

// IsValidRigidTransform reports whether m's bottom row is [0 0 0 1]
// and its rotation block is (within tolerance) orthonormal, matching
// the rigid-transform invariant every incoming Pose must satisfy.
func IsValidRigidTransform(m [16]float64) bool {
	const eps = 1e-6
	if math.Abs(m[12]) > eps || math.Abs(m[13]) > eps || math.Abs(m[14]) > eps || math.Abs(m[15]-1) > eps {
		return false
	}
	cols := [3][3]float64{
		{m[0], m[4], m[8]},
		{m[1], m[5], m[9]},
		{m[2], m[6], m[10]},
	}
	for i := 0; i < 3; i++ {
		if math.Abs(norm3(cols[i])-1) > 1e-3 {
			return false
		}
		for j := i + 1; j < 3; j++ {
			if math.Abs(dot3(cols[i], cols[j])) > 1e-3 {
				return false
			}
		}
	}
	return true
}

// TransformMesh returns a copy of m with positions and normals mapped
// through pose.
func TransformMesh(mesh *Mesh, pose Pose) *Mesh {
	out := mesh.Clone()
	for i := range out.Positions {
		out.Positions[i] = ApplyPose(pose, out.Positions[i])
	}
	for i := range out.Normals {
		out.Normals[i] = normalize3(ApplyPoseDirection(pose, out.Normals[i]))
	}
	return out
}
