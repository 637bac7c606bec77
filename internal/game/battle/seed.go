package battle

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// DeriveSeed maps a scenario name to a stable 64-bit RNG seed, so the
// same named scenario replays identically across runs and machines.
func DeriveSeed(name string) uint64 {
	sum := blake2b.Sum256([]byte(name))
	return binary.LittleEndian.Uint64(sum[:8])
}
