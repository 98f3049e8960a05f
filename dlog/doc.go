// Package dlog solves bounded discrete logarithms with the baby-step
// giant-step algorithm.
//
// Given base B, target T and bound L, [Solver.Solve] finds x in [0, L)
// with x*B = T using about 2*sqrt(L) group additions:
//
//  1. Baby steps j*B for j < m = ceil(sqrt(L)) are hashed into a table.
//  2. Giant steps T - i*m*B for i < m are looked up in that table.
//  3. A hit (i, j) yields the candidate x = i*m + j, which is accepted
//     only after x*B = T is confirmed by exact point equality.
//
// The table is keyed by a [Hasher] over the canonical point encoding.
// [SHA256Hasher] is the default; [Blake2bHasher] is a faster
// alternative. Since hits are always re-verified, a colliding key can
// never produce a wrong answer, only a wasted verification.
//
// ElGamal decryption in this module relies on the solver with L equal to
// the chunk base, 2^16 by default, which keeps each call to a few
// hundred point additions.
package dlog
