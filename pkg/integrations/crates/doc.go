// Package crates describes Rust crates published on crates.io.
//
// crates.io rejects requests without a User-Agent; the shared client always
// sends one.
package crates
