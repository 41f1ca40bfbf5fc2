package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_AlignDown(t *testing.T) {
	require.Equal(t, uint64(0x107FC0), AlignDown(0x107FC3, 32))
	require.Equal(t, uint64(0x107FC0), AlignDown(0x107FC0, 32))
	require.Equal(t, uint64(0), AlignDown(31, 32))
	require.Equal(t, uint64(0x100000), AlignDown(0x100FFF, 4096))
}

func Test_AlignUp(t *testing.T) {
	require.Equal(t, uint64(32), AlignUp(1, 32))
	require.Equal(t, uint64(32), AlignUp(32, 32))
	require.Equal(t, uint64(64), AlignUp(33, 32))
	require.Equal(t, uint64(0), AlignUp(0, 4096))
	require.Equal(t, uint64(8192), AlignUp(4097, 4096))
}

func Test_IsPow2(t *testing.T) {
	require.False(t, IsPow2(0))
	require.True(t, IsPow2(1))
	require.True(t, IsPow2(2))
	require.False(t, IsPow2(3))
	require.True(t, IsPow2(4096))
	require.True(t, IsPow2(1<<63))
	require.False(t, IsPow2(1<<63+1))
}

func Test_RoundUpPow2(t *testing.T) {
	cases := []struct {
		in   uint64
		want uint64
	}{
		{1, 1},
		{2, 2},
		{3, 4},
		{63, 64},
		{64, 64},
		{65, 128},
		{100000, 131072},
		{1 << 63, 1 << 63},
	}
	for _, tc := range cases {
		got, ok := RoundUpPow2(tc.in)
		require.True(t, ok, "RoundUpPow2(%d)", tc.in)
		require.Equal(t, tc.want, got, "RoundUpPow2(%d)", tc.in)
	}
}

func Test_RoundUpPow2_OutOfRange(t *testing.T) {
	_, ok := RoundUpPow2(0)
	require.False(t, ok, "zero cannot be rounded")

	_, ok = RoundUpPow2(1<<63 + 1)
	require.False(t, ok, "values above 2^63 cannot be rounded within 64 bits")

	_, ok = RoundUpPow2(^uint64(0))
	require.False(t, ok)
}

// Header layout must stay identical across every place it is constructed or
// read: the record is written into raw memory and reinterpreted later at the
// same address.
func Test_HeaderLayout(t *testing.T) {
	require.Equal(t, 32, HeaderSize)
	require.True(t, IsPow2(HeaderSize), "header size must be a power of two")
	require.Equal(t, 0x00, HeaderNextOffset)
	require.Equal(t, 0x08, HeaderSizeOffset)
	require.Equal(t, 0x10, HeaderFlagOffset)
	require.Less(t, HeaderFlagOffset, HeaderSize)
}

func Test_EncodingRoundTrip(t *testing.T) {
	buf := make([]byte, 64)

	PutU64(buf, 8, 0x1122334455667788)
	require.Equal(t, uint64(0x1122334455667788), ReadU64(buf, 8))
	require.Equal(t, byte(0x88), buf[8], "little-endian byte order")

	PutU32(buf, 0, 0xAABBCCDD)
	require.Equal(t, uint32(0xAABBCCDD), ReadU32(buf, 0))
	require.Equal(t, byte(0xDD), buf[0])
}
