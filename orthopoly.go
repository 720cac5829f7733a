/*
Package orthopoly provides a pure Go implementation of dense real polynomial algebra on [-1, 1],
Gram-Schmidt orthogonalization under exact and sampled inner products, separable
multi-dimensional bases built from products of one-dimensional ones, and a harness measuring
how fast a sampled orthogonalization converges to the exact one.
*/
package orthopoly
