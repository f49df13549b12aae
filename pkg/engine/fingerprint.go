// pkg/engine/fingerprint.go
package engine

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/opd-ai/go-celestial/pkg/physics"
)

// fingerprint hashes a state stream so two runs can be compared without
// keeping every state.
type fingerprint struct {
	digest *xxhash.Digest
	buf    [48]byte
}

func newFingerprint() *fingerprint {
	return &fingerprint{digest: xxhash.New()}
}

func (f *fingerprint) add(s physics.State) {
	binary.LittleEndian.PutUint64(f.buf[0:], uint64(s.Step))
	binary.LittleEndian.PutUint64(f.buf[8:], math.Float64bits(s.Time))
	binary.LittleEndian.PutUint64(f.buf[16:], math.Float64bits(s.Position.X))
	binary.LittleEndian.PutUint64(f.buf[24:], math.Float64bits(s.Position.Y))
	binary.LittleEndian.PutUint64(f.buf[32:], math.Float64bits(s.Velocity.X))
	binary.LittleEndian.PutUint64(f.buf[40:], math.Float64bits(s.Velocity.Y))
	f.digest.Write(f.buf[:])
}

func (f *fingerprint) sum() uint64 {
	return f.digest.Sum64()
}

// Fingerprint returns the hash of the full trajectory of p. Equal parameters
// always produce equal fingerprints.
func Fingerprint(p physics.Parameters) uint64 {
	f := newFingerprint()
	for s := range physics.Trajectory(p) {
		f.add(s)
	}
	return f.sum()
}
