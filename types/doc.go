// Package types holds the value types shared by the election and syncer
// packages: hashes, accounts, amounts and the minimal block header the
// core needs to reason about chain shape. It deliberately does not model
// a block body, a signature algorithm, or wire encoding — those belong to
// the ledger and network layers this module treats as external
// collaborators.
package types
