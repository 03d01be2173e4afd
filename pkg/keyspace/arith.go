package keyspace

import (
	"errors"
)

// ErrInvertedRange is returned by the checked range helpers when end < start.
var ErrInvertedRange = errors.New("keyspace: range end is below range start")

// Add returns k + n modulo 2^256.
//
// The addition runs byte by byte from the least significant end, carrying
// leftward. A carry out of the most significant byte is dropped, so the
// result silently wraps.
func (k Key) Add(n uint64) Key {
	sum, _ := k.add(n)
	return sum
}

// AddChecked returns k + n and reports whether the addition overflowed 256
// bits. On overflow the returned key holds the wrapped value.
func (k Key) AddChecked(n uint64) (Key, bool) {
	return k.add(n)
}

func (k Key) add(n uint64) (Key, bool) {
	carry := n
	for i := KeySize - 1; i >= 0; i-- {
		sum := uint64(k[i]) + carry&0xff
		k[i] = byte(sum)
		carry = carry>>8 + sum>>8
	}
	return k, carry != 0
}

// AddKey returns a + b modulo 2^256 and whether a carry left the most
// significant byte.
func AddKey(a, b Key) (Key, bool) {
	var carry uint16
	for i := KeySize - 1; i >= 0; i-- {
		sum := uint16(a[i]) + uint16(b[i]) + carry
		a[i] = byte(sum)
		carry = sum >> 8
	}
	return a, carry != 0
}

// RangeSize returns end - start modulo 2^256.
//
// end >= start is an unchecked precondition: when it does not hold the
// borrow chain runs off the most significant byte and the result is the
// wrapped difference. Use RangeSizeChecked when the caller needs to know.
func RangeSize(start, end Key) Key {
	size, _ := sub(end, start)
	return size
}

// RangeSizeChecked returns end - start, or ErrInvertedRange when end < start.
func RangeSizeChecked(start, end Key) (Key, error) {
	size, borrow := sub(end, start)
	if borrow {
		return Key{}, ErrInvertedRange
	}
	return size, nil
}

func sub(a, b Key) (Key, bool) {
	var diff Key
	borrow := 0
	for i := KeySize - 1; i >= 0; i-- {
		d := int(a[i]) - int(b[i]) - borrow
		if d < 0 {
			d += 256
			borrow = 1
		} else {
			borrow = 0
		}
		diff[i] = byte(d)
	}
	return diff, borrow != 0
}
