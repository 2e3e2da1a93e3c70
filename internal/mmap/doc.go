// Package mmap provides read-only memory-mapped file access.
//
// # Usage
//
//	m, err := mmap.Open("foreman.rgb")
//	if err != nil { ... }
//	defer m.Close()
//
//	// Zero-copy access to file contents
//	data := m.Bytes()
//
//	// Hint the kernel that planes are read front to back
//	_ = m.Advise(mmap.AccessSequential)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Other platforms: the file is read into memory and Advise is a no-op
//
// A File is safe for concurrent reads. Callers must not touch Bytes() after
// Close returns.
package mmap
