// Package debugctx renders values as debug text while threading a caller
// supplied context value through every nested field.
//
// Types opt in by implementing Debugger, usually through code written by
// debugctx-generator:
//
//	//debugctx:context Symbols
//	type Point struct{ x, y int }
//
//	s := debugctx.Sprint(Point{x: 3, y: 4}, &Symbols{})  // Point { x: 3, y: 4 }
//
// Values that are not Debuggers fall back to registered functions, then to
// reflection for pointers, slices, arrays and maps, and finally to plain
// leaf formatting.
package debugctx
