package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/h2non/filetype"
)

// hashChunkSize is the read size for streamed hashing.
const hashChunkSize = 4096

// hashLength is the number of hex characters kept from the digest.
const hashLength = 16

// sniffLength is how many leading bytes filetype needs to match a header.
const sniffLength = 261

var chunkPool = sync.Pool{
	New: func() any {
		buf := make([]byte, hashChunkSize)
		return &buf
	},
}

// digest is the result of streaming one file.
type digest struct {
	hash     string
	mimeType string
}

// hashFile streams the file through SHA-256 in fixed-size chunks and sniffs
// its MIME type from the leading bytes. The file is never loaded whole.
func hashFile(path string) (digest, error) {
	f, err := os.Open(path) //nolint:gosec // Paths come from walking the project root
	if err != nil {
		return digest{}, err
	}
	defer f.Close()

	bufPtr := chunkPool.Get().(*[]byte) //nolint:forcetypeassert // Pool only holds *[]byte
	defer chunkPool.Put(bufPtr)
	buf := *bufPtr

	h := sha256.New()
	header := make([]byte, 0, sniffLength)

	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
			if len(header) < sniffLength {
				take := min(n, sniffLength-len(header))
				header = append(header, buf[:take]...)
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return digest{}, readErr
		}
	}

	return digest{
		hash:     hex.EncodeToString(h.Sum(nil))[:hashLength],
		mimeType: sniffMIME(header),
	}, nil
}

// sniffMIME returns the MIME type filetype recognizes in header, or "".
func sniffMIME(header []byte) string {
	if len(header) == 0 {
		return ""
	}
	kind, err := filetype.Match(header)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}
