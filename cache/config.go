package cache

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// DefaultAddressWidth is the address width assumed when a Config leaves
// AddressWidth unset. The simulator models a 32-bit machine by default.
const DefaultAddressWidth = 32

// Config holds cache geometry parameters.
type Config struct {
	// Size in bytes
	Size int `json:"size"`
	// Associativity (number of ways per set; 1 = direct-mapped)
	Associativity int `json:"associativity"`
	// BlockSize in bytes (cache line size)
	BlockSize int `json:"block_size"`
	// AddressWidth in bits. Zero means DefaultAddressWidth.
	AddressWidth int `json:"address_width,omitempty"`
}

// DefaultConfig returns the geometry simulated when no explicit parameters
// are given: a 16KB direct-mapped cache with 64-byte blocks on a 32-bit
// machine.
func DefaultConfig() Config {
	return Config{
		Size:          16 * 1024,
		Associativity: 1,
		BlockSize:     64,
		AddressWidth:  DefaultAddressWidth,
	}
}

// FourWayL1Config returns a typical small L1 data cache geometry:
// 32KB, 4-way set associative, 64-byte blocks.
func FourWayL1Config() Config {
	return Config{
		Size:          32 * 1024,
		Associativity: 4,
		BlockSize:     64,
		AddressWidth:  DefaultAddressWidth,
	}
}

// WithDefaults returns a copy of the config with unset optional fields
// filled in. Only AddressWidth is optional; the geometry fields must be
// given explicitly.
func (c Config) WithDefaults() Config {
	if c.AddressWidth == 0 {
		c.AddressWidth = DefaultAddressWidth
	}
	return c
}

// NumSets returns the number of sets this geometry produces, or zero when
// the parameters cannot form any set.
func (c Config) NumSets() int {
	blocksPerSet := c.Associativity * c.BlockSize
	if blocksPerSet <= 0 {
		return 0
	}
	return c.Size / blocksPerSet
}

// Validate checks that the geometry describes a cache that can be indexed
// with address bits. The checks run in a fixed order and each failure names
// the offending value:
//
//  1. BlockSize must be a power of two.
//  2. The number of sets, Size/(Associativity*BlockSize), must be non-zero.
//  3. The number of sets must be a power of two.
//  4. AddressWidth must fit in a 64-bit address.
func (c Config) Validate() error {
	if !isPowerOfTwo(c.BlockSize) {
		return fmt.Errorf("%w: block size %d", ErrBlockSizeNotPowerOfTwo, c.BlockSize)
	}

	numSets := c.NumSets()
	if numSets <= 0 {
		return fmt.Errorf(
			"%w: size %d with associativity %d and block size %d",
			ErrZeroSets, c.Size, c.Associativity, c.BlockSize)
	}
	if !isPowerOfTwo(numSets) {
		return fmt.Errorf("%w: %d sets", ErrSetCountNotPowerOfTwo, numSets)
	}

	if c.AddressWidth < 1 || c.AddressWidth > 64 {
		return fmt.Errorf("%w: address width %d", ErrInvalidAddressWidth, c.AddressWidth)
	}

	return nil
}

// LoadConfig loads a cache geometry from a JSON file. The file may contain
// comments and trailing commas (JWCC). Fields omitted from the file keep
// their DefaultConfig values. The loaded geometry is validated before it is
// returned.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read cache config file: %w", err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse cache config: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(standardized, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse cache config: %w", err)
	}

	config = config.WithDefaults()
	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}
