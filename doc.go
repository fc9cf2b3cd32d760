// Package relaygotools is a set of building blocks for compiling GraphQL
// documents against a pair of schemas: the server schema understood by the
// remote execution engine and a local client schema extension.
//
// The pkg/ir package defines the compiled intermediate representation,
// pkg/schema the dual schema lookup layer, and pkg/irtransform the compiler
// passes that rewrite IR documents. The clientextensions pass in
// pkg/irtransform partitions every selection tree level into server
// resolvable and client only selections so that later stages know which parts
// of a response have to be resolved locally.
//
// All passes are pure tree transforms: they return fresh documents and never
// mutate their input, so independent definitions can be processed
// concurrently and passes compose freely.
package relaygotools
