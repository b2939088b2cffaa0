package main

import "math"

// float32ToHalf packs src into IEEE 754-2008 binary16 bits in dst, used when
// the grid is uploaded to the device in half precision. dst must be at least
// len(src).
func float32ToHalf(dst []uint16, src []float32) {
	for i, v := range src {
		dst[i] = halfBits(v)
	}
}

// halfBits converts one float32 to binary16 with round-to-nearest.
func halfBits(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int((bits >> 23) & 0xff)
	mant := bits & 0x7fffff

	if exp == 0xff {
		if mant == 0 {
			return sign | 0x7c00 // infinity
		}
		payload := uint16(mant >> 13)
		if payload == 0 {
			payload = 1 // keep NaN a NaN
		}
		return sign | 0x7c00 | payload
	}
	if exp == 0 && mant == 0 {
		return sign
	}

	e := exp - 127 + 15
	if e >= 0x1f {
		return sign | 0x7c00
	}
	if e <= 0 {
		if e < -10 {
			return sign
		}
		mant |= 0x800000
		mant >>= uint(1 - e)
		mant += 0x1000
		return sign | uint16(mant>>13)
	}
	mant += 0x1000
	if mant&0x800000 != 0 {
		mant = 0
		e++
		if e >= 0x1f {
			return sign | 0x7c00
		}
	}
	return sign | uint16(e<<10) | uint16(mant>>13)
}
