package verify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Disen-Shaw/gofifo/fifo"
)

// TestRunCleanRing verifies a healthy ring passes a full run with
// matching stream digests on both storage variants.
func TestRunCleanRing(t *testing.T) {
	ext, err := fifo.New[byte](1024)
	require.NoError(t, err)
	emb := fifo.NewFixed[byte, [1024]byte]()

	for name, ring := range map[string]Transfer{"external": ext, "embedded": emb} {
		rn := Runner{Variant: name, Iterations: 5000, FrameLen: 17, Seed: 1}
		rep := rn.Run(ring)

		assert.True(t, rep.OK, "variant %s: %s", name, rep.Failure)
		assert.Equal(t, 5000, rep.Completed)
		assert.Equal(t, rep.PushDigest, rep.PopDigest)
		assert.Empty(t, rep.Failure)
	}
}

// TestRunDeterministicDigest pins the digest for a fixed seed: two runs
// with identical parameters must produce identical stream digests.
func TestRunDeterministicDigest(t *testing.T) {
	r1, err := fifo.New[byte](256)
	require.NoError(t, err)
	r2, err := fifo.New[byte](256)
	require.NoError(t, err)

	rn := Runner{Variant: "external", Iterations: 100, FrameLen: 17, Seed: 42}
	rep1 := rn.Run(r1)
	rep2 := rn.Run(r2)

	require.True(t, rep1.OK)
	assert.Equal(t, rep1.PushDigest, rep2.PushDigest)
}

// corruptRing flips a byte on every pop to simulate a broken transfer.
type corruptRing struct {
	Transfer
}

func (c corruptRing) PopSlice(dst []byte) bool {
	if !c.Transfer.PopSlice(dst) {
		return false
	}
	dst[0] ^= 0xff
	return true
}

// TestRunDetectsCorruption feeds the runner a transfer that corrupts
// popped frames and expects a compare failure plus diverging digests.
func TestRunDetectsCorruption(t *testing.T) {
	ring, err := fifo.New[byte](64)
	require.NoError(t, err)

	rn := Runner{Variant: "poisoned", Iterations: 10, FrameLen: 8, Seed: 7}
	rep := rn.Run(corruptRing{ring})

	assert.False(t, rep.OK)
	assert.Equal(t, 0, rep.Completed)
	assert.Contains(t, rep.Failure, "frame mismatch")
	assert.NotEqual(t, rep.PushDigest, rep.PopDigest)
}

// TestRunRejectsBadConfig expects a failed report, not a panic or a
// vacuous pass, for non-positive frame lengths and negative iteration
// counts.
func TestRunRejectsBadConfig(t *testing.T) {
	ring, err := fifo.New[byte](64)
	require.NoError(t, err)

	for _, frameLen := range []int{0, -3} {
		rep := Runner{Variant: "external", Iterations: 10, FrameLen: frameLen, Seed: 1}.Run(ring)
		assert.False(t, rep.OK, "frame length %d", frameLen)
		assert.Contains(t, rep.Failure, "invalid frame length")
		assert.Equal(t, 0, rep.Completed)
	}

	rep := Runner{Variant: "external", Iterations: -1, FrameLen: 8, Seed: 1}.Run(ring)
	assert.False(t, rep.OK)
	assert.Contains(t, rep.Failure, "invalid iteration count")
}

// TestRunFrameTooLarge expects a push rejection, not a hang, when the
// frame exceeds ring capacity.
func TestRunFrameTooLarge(t *testing.T) {
	ring, err := fifo.New[byte](8)
	require.NoError(t, err)

	rn := Runner{Variant: "external", Iterations: 3, FrameLen: 16, Seed: 1}
	rep := rn.Run(ring)

	assert.False(t, rep.OK)
	assert.Contains(t, rep.Failure, "push rejected")
}

// TestReportJSON round-trips the report encoding so the field tags stay
// honest.
func TestReportJSON(t *testing.T) {
	ring, err := fifo.New[byte](128)
	require.NoError(t, err)

	rep := Runner{Variant: "external", Iterations: 10, FrameLen: 17, Seed: 3}.Run(ring)
	raw, err := rep.JSON()
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, rep.Variant, decoded.Variant)
	assert.Equal(t, rep.PushDigest, decoded.PushDigest)
	assert.Equal(t, rep.Completed, decoded.Completed)
	assert.True(t, decoded.OK)
}
