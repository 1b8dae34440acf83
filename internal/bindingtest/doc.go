// Package bindingtest holds message and struct bindings in the shape the
// bragi compiler emits for Go, written out by hand. They pin the runtime
// contract: head layout, head pointers, tags blocks, tails, nested structs
// and the three enum shapes.
//
// Schema (bragi IDL):
//
//	message Basic 2 { head(128): uint32 a; uint64 b; string c; tags { tag(1) uint32 d; tag(2) byte[] e; tag(3) string f; } }
//	message Arrays 1 { head(128): byte[] arr; }
//	message Split 3 { head(128): string bar; tail: uint32 baz; }
//	message EmptyHead 4 { head(128): tail: string foo; }
//	message EmptyMessage 5 { head(128): }
//	message Enums 6 { head(128): Foo foo; Bar bar; Foo[] foos; Bar[4] bars; Perms perms; }
//	message Nested 7 { head(128): Baz baz; }
//	struct Item { string a; uint64 b; uint32 c; byte[] d; }
//	struct Pair { string a; uint32 b; }
//	struct Baz { Pair pair; Item[] items; }
package bindingtest
