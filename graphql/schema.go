package graphql

import (
	_ "embed"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	activityService "mergington.GO/service/activity"
)

//go:embed schema.graphqls
var Schema string

// NewSchema parses the schema against a resolver backed by svc.
func NewSchema(svc *activityService.Service) (*gql.Schema, error) {
	return gql.ParseSchema(Schema, NewResolver(svc))
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
