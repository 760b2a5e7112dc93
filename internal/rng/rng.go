// Package rng is the single place where search runs get their randomness.
//
// math/rand.Rand is not goroutine-safe: every run owns one stream, and
// parallel workers get their own via Derive.
package rng

import "math/rand"

// DefaultSeed replaces a zero seed so that "unset" still means reproducible.
const DefaultSeed int64 = 1

// New returns a deterministic generator; seed 0 maps to DefaultSeed.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream id with the SplitMix64
// finalizer. Neighbouring stream ids give uncorrelated seeds.
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// Derive returns the generator of sub-stream `stream` under parent seed.
// It does not touch any other generator, so sub-streams can be created in
// any order (or concurrently) with identical results.
func Derive(parent int64, stream uint64) *rand.Rand {
	return New(DeriveSeed(parent, stream))
}

// Shuffle is an in-place Fisher–Yates shuffle.
func Shuffle[T any](s []T, r *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
