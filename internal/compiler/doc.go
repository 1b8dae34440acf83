// Package compiler is the boundary to the external bragi schema compiler.
//
// The compiler is a separate binary invoked as
//
//	<compiler> -o <output> <source>... <language> [language args...]
//
// A zero exit status means the generated source was written to <output>.
// Any other status is reported as *Error carrying the compiler's stdout
// and stderr verbatim.
package compiler
