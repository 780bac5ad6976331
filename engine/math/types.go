package math

// Vec2 represents a 2D point or vector in surface coordinates.
type Vec2 struct {
	X, Y float64
}

/**
 * @brief Represents the extents of a 2d object.
 */
type Extents2D struct {
	/** @brief The minimum extents of the object. */
	Min Vec2
	/** @brief The maximum extents of the object. */
	Max Vec2
}

/**
 * @brief A 2D affine transform stored as the first two rows of a 3x3 matrix:
 *
 *	| A C E |
 *	| B D F |
 *	| 0 0 1 |
 */
type Affine struct {
	A, B, C, D, E, F float64
}
