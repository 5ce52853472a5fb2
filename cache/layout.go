package cache

import (
	"fmt"
	"math/bits"
)

// Layout describes how an address splits into offset, index, and tag
// fields for a particular cache geometry.
type Layout struct {
	// AddressWidth is the total number of significant address bits.
	AddressWidth uint
	// OffsetWidth is log2(BlockSize), the byte-within-block bits.
	OffsetWidth uint
	// IndexWidth is log2(NumSets), the set-selection bits.
	IndexWidth uint
	// TagWidth is AddressWidth - OffsetWidth - IndexWidth.
	TagWidth uint
}

// DeriveLayout computes the address field widths for a geometry. It fails
// with a zero Layout when the block size or the set count is not an exact
// power of two, or when the offset and index fields do not fit in the
// configured address width.
func DeriveLayout(config Config) (Layout, error) {
	offsetWidth, ok := log2(config.BlockSize)
	if !ok {
		return Layout{}, fmt.Errorf(
			"%w: block size %d", ErrBlockSizeNotPowerOfTwo, config.BlockSize)
	}

	numSets := config.NumSets()
	if numSets <= 0 {
		return Layout{}, fmt.Errorf(
			"%w: size %d with associativity %d and block size %d",
			ErrZeroSets, config.Size, config.Associativity, config.BlockSize)
	}
	indexWidth, ok := log2(numSets)
	if !ok {
		return Layout{}, fmt.Errorf(
			"%w: %d sets", ErrSetCountNotPowerOfTwo, numSets)
	}

	addressWidth := uint(config.AddressWidth)
	if offsetWidth+indexWidth > addressWidth {
		return Layout{}, fmt.Errorf(
			"%w: %d offset bits and %d index bits exceed %d-bit addresses",
			ErrAddressWidthTooNarrow, offsetWidth, indexWidth, addressWidth)
	}

	return Layout{
		AddressWidth: addressWidth,
		OffsetWidth:  offsetWidth,
		IndexWidth:   indexWidth,
		TagWidth:     addressWidth - offsetWidth - indexWidth,
	}, nil
}

// Split decomposes an address into its tag and index fields. Bits above
// AddressWidth are ignored. For a valid layout the returned index is always
// smaller than the number of sets.
func (l Layout) Split(addr uint64) (tag, index uint64) {
	if l.AddressWidth < 64 {
		addr &= (1 << l.AddressWidth) - 1
	}

	index = (addr >> l.OffsetWidth) & ((1 << l.IndexWidth) - 1)
	tag = addr >> (l.OffsetWidth + l.IndexWidth)

	return tag, index
}

// OffsetMask returns the mask selecting the byte-within-block bits of an
// address.
func (l Layout) OffsetMask() uint64 {
	return (1 << l.OffsetWidth) - 1
}

func log2(n int) (uint, bool) {
	if !isPowerOfTwo(n) {
		return 0, false
	}
	return uint(bits.TrailingZeros64(uint64(n))), true
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
