// Package hash provides fast, hardware-accelerated hashing utilities for
// data integrity.
//
// # CRC32-Castagnoli (CRC32C)
//
// All checksums use CRC32-Castagnoli (CRC32C) which provides:
//
//   - Hardware acceleration on x86 (SSE4.2) and ARM (CRC extension)
//   - 10-20 GB/s throughput on modern CPUs
//   - Superior error detection compared to CRC32-IEEE
//   - Industry standard (iSCSI, Btrfs, RocksDB, LevelDB)
//
// Filter fingerprints fold every compiled clause through a CRC32C stream,
// so two runs over the same filter document agree on the fingerprint and a
// checkpoint written under a different filter is rejected.
//
// # Usage
//
// For one-shot checksums:
//
//	checksum := hash.CRC32C(data)
//
// For streaming checksums:
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	checksum := h.Sum32()
package hash
