// Package graph defines the GraphQL schema and its resolvers.
package graph

import (
	_ "embed"

	graphql "github.com/graph-gophers/graphql-go"
)

// SchemaSDL is the GraphQL schema definition served by the API. The field
// and type shapes are part of the published contract and must not change
// incompatibly.
//
//go:embed schema.graphql
var SchemaSDL string

// NewSchema parses the schema against the resolver.
func NewSchema(resolver *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(SchemaSDL, resolver)
}

// MustNewSchema is like NewSchema but panics on schema errors.
// Schema errors are programming mistakes, not runtime conditions.
func MustNewSchema(resolver *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(SchemaSDL, resolver)
}
