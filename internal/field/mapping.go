package field

import "github.com/aryamehta0302/handfield/internal/detector"

// WorldScale maps the full normalized camera frame onto the visible
// simulation volume.
const WorldScale = 16.0

// MapToWorld projects a normalized camera-space point into world space.
// The camera frame is centered on the origin and the vertical axis is
// inverted: camera y grows downward, world y grows upward. Relative depth
// passes through unmodified. The transform is stateless and applied
// independently per anchor, per frame.
func MapToWorld(p detector.Point3D) Vec3 {
	return Vec3{
		X: (p.X - 0.5) * WorldScale,
		Y: (0.5 - p.Y) * WorldScale,
		Z: p.Z,
	}
}
