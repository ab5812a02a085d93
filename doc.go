// Package lattice is the root of a small numeric toolkit for lattice
// (multidimensional lookup table) interpolation layers.
//
// 🚀 What is inside?
//
//	• lattice/ : Shape, Lattice, linear kernel initializer, hypercube and simplex
//	             interpolation, input clipping and a gorgonia tensor adapter
//	• matrix/  : the dense row-major float64 matrix the layer computes on, plus
//	             gonum-backed products, row-wise outer products and clipping
//
// Quick ASCII example (a 2×2 lattice, vertex values in brackets):
//
//	(0,1)[1] ───── (1,1)[0]
//	   │              │
//	   │    x=(½,½)   │     f(x) = ¼·0 + ¼·1 + ¼·1 + ¼·0 = ½
//	   │              │
//	(0,0)[0] ───── (1,0)[1]
//
// Runnable demos live under examples/.
//
//	go get github.com/katalvlaran/lattice
package lattice
