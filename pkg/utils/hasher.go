package utils

import (
	"encoding/hex"
	"io"
	"os"

	"lukechampine.com/blake3"
)

// digestSize is the BLAKE3 output length in bytes.
const digestSize = 32

// chunkSizeFor returns the hashing chunk size based on total input size.
func chunkSizeFor(total int64) int64 {
	switch {
	case total <= 4<<20: // ≤ 4 MiB, or unknown
		return 512 << 10
	case total <= 32<<20:
		return 1 << 20
	default:
		return 2 << 20
	}
}

// Blake3Hex returns the hex-encoded BLAKE3 digest of data.
func Blake3Hex(data []byte) string {
	h := blake3.New(digestSize, nil)
	chunk := chunkSizeFor(int64(len(data)))
	for off := int64(0); off < int64(len(data)); off += chunk {
		end := off + chunk
		if end > int64(len(data)) {
			end = int64(len(data))
		}
		_, _ = h.Write(data[off:end])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Blake3HexFile returns the hex-encoded BLAKE3 digest of the file at path.
func Blake3HexFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", err
	}

	h := blake3.New(digestSize, nil)
	buf := make([]byte, chunkSizeFor(fi.Size()))
	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			if _, werr := h.Write(buf[:n]); werr != nil {
				return "", werr
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return "", rerr
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
