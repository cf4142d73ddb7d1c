package compare

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// BinaryComparator compares files byte-by-byte in-process.
// The size short-circuit means content is only ever read for files
// that could actually be identical.
type BinaryComparator struct {
	bufferSize    int
	bufferPool    *sync.Pool
	readerWrapper ReaderWrapper // Optional reader wrapper (e.g., for rate limiting)
}

// NewBinaryComparator creates a new byte-by-byte comparator
func NewBinaryComparator(bufferSize int) *BinaryComparator {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &BinaryComparator{
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// SetReaderWrapper sets a function to wrap readers (e.g., for rate limiting)
func (c *BinaryComparator) SetReaderWrapper(wrapper ReaderWrapper) {
	c.readerWrapper = wrapper
}

// FilesEqual compares two files byte-by-byte
func (c *BinaryComparator) FilesEqual(ctx context.Context, pathA, pathB string) (bool, error) {
	infoA, err := os.Stat(pathA)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", pathA, err)
	}
	infoB, err := os.Stat(pathB)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", pathB, err)
	}

	// Quick check: if sizes differ, files are different
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	fileA, err := os.Open(pathA)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", pathA, err)
	}
	defer fileA.Close()

	fileB, err := os.Open(pathB)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", pathB, err)
	}
	defer fileB.Close()

	var readerA io.Reader = fileA
	var readerB io.Reader = fileB
	if c.readerWrapper != nil {
		readerA = c.readerWrapper(fileA)
		readerB = c.readerWrapper(fileB)
	}

	bufAPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(bufAPtr)
	bufA := *bufAPtr

	bufBPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(bufBPtr)
	bufB := *bufBPtr

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		nA, errA := io.ReadFull(readerA, bufA)
		nB, errB := io.ReadFull(readerB, bufB)

		if nA != nB {
			// Same stat size but the streams disagree: a file changed
			// underneath us. Treat as different, not as an I/O failure.
			return false, nil
		}

		if nA > 0 && !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false, nil
		}

		endedA := errA == io.EOF || errA == io.ErrUnexpectedEOF
		endedB := errB == io.EOF || errB == io.ErrUnexpectedEOF

		if endedA && endedB {
			return true, nil
		}
		if endedA != endedB {
			return false, nil
		}
		if errA != nil {
			return false, fmt.Errorf("failed to read %s: %w", pathA, errA)
		}
		if errB != nil {
			return false, fmt.Errorf("failed to read %s: %w", pathB, errB)
		}
	}
}

// Name returns the comparator name
func (c *BinaryComparator) Name() string {
	return "binary"
}
