package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/scanjoin/format"
)

func TestCodecRoundTrip(t *testing.T) {
	// Delta-encoded position references and slowly changing axis values
	// compress well; random-ish payloads should still survive unchanged.
	payloads := map[string][]byte{
		"empty":      {},
		"small":      []byte("ax:motor1"),
		"repetitive": bytes.Repeat([]byte{0x01, 0x00, 0x00, 0x00}, 4096),
		"mixed":      append(bytes.Repeat([]byte{0xAB}, 1000), []byte("ch:det1 counts")...),
	}

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			for name, payload := range payloads {
				t.Run(name, func(t *testing.T) {
					compressed, err := codec.Compress(payload)
					require.NoError(t, err)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					if len(payload) == 0 {
						require.Empty(t, decompressed)
					} else {
						require.Equal(t, payload, decompressed)
					}
				})
			}
		})
	}
}

func TestCodecCompressesRepetitiveData(t *testing.T) {
	payload := bytes.Repeat([]byte{0x02, 0x01, 0x01, 0x01}, 8192)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(payload)/2,
				"repetitive payloads should compress by at least half")
		})
	}
}

func TestGetCodecInvalidType(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x9))
	require.Error(t, err)

	_, err = CreateCodec(format.CompressionType(0x9), "body")
	require.Error(t, err)
}
