package sskr

// GF(256) field arithmetic using polynomial representation with operations
// modulo the Rijndael irreducible polynomial x^8 + x^4 + x^3 + x + 1 (0x11B),
// the same field used by AES and SLIP-0039.

const rijndaelPoly = 0x11B

// exp and log tables for efficient multiplication/division in GF(256)
var (
	gfExp [256]byte
	gfLog [256]byte
)

func init() {
	// Build the tables using repeated multiplication by the generator (2)
	x := byte(1)
	for i := 0; i < 255; i++ {
		gfExp[i] = x
		gfLog[x] = byte(i)
		x = gfMulBy2(x)
	}
	gfExp[255] = 1
	// log(0) is undefined; never read by callers
	gfLog[0] = 0
}

// gfMulBy2 multiplies by x (2) in GF(256)
func gfMulBy2(a byte) byte {
	if a&0x80 == 0 {
		return a << 1
	}
	return (a << 1) ^ byte(rijndaelPoly&0xFF)
}

// gfAdd performs addition in GF(256), which is XOR. Subtraction is identical.
func gfAdd(a, b byte) byte {
	return a ^ b
}

// gfMul performs multiplication in GF(256) using the log/exp tables
func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExp[(int(gfLog[a])+int(gfLog[b]))%255]
}

// gfDiv performs division in GF(256)
func gfDiv(a, b byte) byte {
	if b == 0 {
		panic("division by zero in GF(256)")
	}
	if a == 0 {
		return 0
	}
	return gfExp[(int(gfLog[a])-int(gfLog[b])+255)%255]
}

// gfInv finds the multiplicative inverse of a in GF(256). inv(0) is
// undefined; callers guarantee a != 0 via the x-coordinate assignment.
func gfInv(a byte) byte {
	if a == 0 {
		panic("inverse of zero in GF(256)")
	}
	return gfExp[255-gfLog[a]]
}

// point is one Shamir evaluation point: an x-coordinate and the y values
// for every byte position of the shared buffer.
type point struct {
	x byte
	y []byte
}

// interpolate evaluates the Lagrange polynomial defined by points at x,
// independently for each byte position. The points must have pairwise
// distinct x-coordinates and equal-length y buffers.
func interpolate(x byte, points []point) []byte {
	if len(points) == 0 {
		return nil
	}

	yLen := len(points[0].y)
	result := make([]byte, yLen)

	for k := 0; k < yLen; k++ {
		sum := byte(0)

		for _, pi := range points {
			numerator := byte(1)
			denominator := byte(1)

			for _, pj := range points {
				if pi.x == pj.x {
					continue
				}
				numerator = gfMul(numerator, gfAdd(x, pj.x))
				denominator = gfMul(denominator, gfAdd(pi.x, pj.x))
			}

			if denominator == 0 {
				panic("duplicate x-coordinates in interpolation")
			}

			sum = gfAdd(sum, gfMul(pi.y[k], gfDiv(numerator, denominator)))
		}

		result[k] = sum
	}

	return result
}
