package cube

// cycles lists, per axis, the four face slots that travel around the
// axis in order, followed by the two slots perpendicular to it.
var cycles = [3][6]Face{
	X: {Up, Left, Down, Right, Back, Front},
	Y: {Right, Front, Left, Back, Up, Down},
	Z: {Up, Back, Down, Front, Right, Left},
}

// Permute returns the sticker assignment of a cubie after a quarter turn
// about axis in direction dir. Slot c[i] of the cycle takes the color of
// c[i+1] for CCW and of c[i-1] for CW; the fixed slots keep theirs.
func Permute(s Stickers, axis Axis, dir Direction) Stickers {
	c := cycles[axis]
	shift := 1
	if dir == CW {
		shift = 3
	}

	out := s
	for i := 0; i < 4; i++ {
		out[c[i]] = s[c[(i+shift)%4]]
	}
	return out
}

// FixedFaces returns the two slots a turn about axis leaves in place.
func FixedFaces(axis Axis) [2]Face {
	return [2]Face{cycles[axis][4], cycles[axis][5]}
}
