// Package bragi is the runtime for bragi-encoded messages. Generated
// bindings implement Struct and Message on top of Writer and Reader; the
// functions in this package drive them.
//
// Wire format:
//   - integers are little-endian at their fixed width; int, uint and
//     uintptr always take 8 bytes
//   - varints take 1 to 9 bytes; the first byte alone gives the length
//   - strings and byte arrays are a varint byte length and the raw bytes
//   - a message is a head of exactly HeadSize bytes followed by a tail of
//     the length recorded in the head
//
// Head layout:
//
//	[0, 4)         MESSAGE_ID, uint32
//	[4, 8)         tail length, uint32
//	[8, HeadSize)  head members in schema order
//
// Dynamic head members are reached through offsets of PointerSize(HeadSize)
// bytes; optional members live in tags blocks ended by tag 0.
package bragi
