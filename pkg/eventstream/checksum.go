package eventstream

import (
	"hash/crc32"
	"sync"
)

var (
	crcOnce  sync.Once
	crcTable *crc32.Table
)

// Checksum computes the CRC32C (Castagnoli) checksum used by the wire
// format's prelude and message integrity fields. The 256-entry polynomial
// table is built on first use and reused for the life of the process.
func Checksum(data []byte) uint32 {
	crcOnce.Do(func() {
		crcTable = crc32.MakeTable(crc32.Castagnoli)
	})
	return crc32.Checksum(data, crcTable)
}
