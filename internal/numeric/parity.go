package numeric

// Integer is the set of integer kinds accepted by the parity helpers.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// IsEven reports whether n is divisible by two. It is total over every
// representable value, including the most negative one: Go's remainder
// truncates toward zero, so -4%2 == 0 and -3%2 == -1.
func IsEven[T Integer](n T) bool {
	return n%2 == 0
}

// IsOdd is the complement of IsEven.
func IsOdd[T Integer](n T) bool {
	return n%2 != 0
}
