package buffer

import (
	"bufio"
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {

	t.Run("WriteReadUint64", func(t *testing.T) {
		b := NewBufferSize(8)
		n, err := WriteUint64(b, 0x1122334455667788)
		require.NoError(t, err)
		require.Equal(t, int64(8), n)
		require.Equal(t, []byte{0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}, b.Bytes())

		var c uint64
		n, err = ReadUint64(b, &c)
		require.NoError(t, err)
		require.Equal(t, int64(8), n)
		require.Equal(t, uint64(0x1122334455667788), c)
		require.Equal(t, 0, b.Size())

		_, err = WriteUint64(b, 1)
		require.Error(t, err)

		_, err = ReadUint64(b, nil)
		require.Error(t, err)
	})

	t.Run("WriteReadFloat64Slice", func(t *testing.T) {
		v := []float64{0, -1, math.Pi, math.Inf(1), 1e-300}
		b := NewBufferSize(8 * len(v))
		n, err := WriteFloat64Slice(b, v)
		require.NoError(t, err)
		require.Equal(t, int64(8*len(v)), n)

		w := make([]float64, len(v))
		n, err = ReadFloat64Slice(b, w)
		require.NoError(t, err)
		require.Equal(t, int64(8*len(v)), n)
		require.Equal(t, v, w)

		b.Reset()
		_, err = ReadFloat64Slice(b, make([]float64, len(v)+1))
		require.Error(t, err)
	})

	t.Run("Bufio", func(t *testing.T) {
		// 16 bytes of buffer forces flushes and refills every two values
		v := make([]float64, 37)
		for i := range v {
			v[i] = float64(i) / 3
		}

		var stream bytes.Buffer
		w := bufio.NewWriterSize(&stream, 16)
		n, err := WriteFloat64Slice(w, v)
		require.NoError(t, err)
		require.NoError(t, w.Flush())
		require.Equal(t, int64(8*len(v)), n)
		require.Equal(t, 8*len(v), stream.Len())

		r := bufio.NewReaderSize(&stream, 16)
		u := make([]float64, len(v))
		n, err = ReadFloat64Slice(r, u)
		require.NoError(t, err)
		require.Equal(t, int64(8*len(v)), n)
		require.Equal(t, v, u)
	})

	t.Run("TooSmall", func(t *testing.T) {
		b := NewBufferSize(4)
		_, err := b.Write([]byte{1, 2, 3, 4, 5})
		require.Error(t, err)
		_, err = WriteFloat64Slice(b, []float64{1})
		require.Error(t, err)
	})
}
