package graphql

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mergington.GO/api"
	graphqlpkg "mergington.GO/graphql"
)

func init() {
	api.RegisterRoute(RegisterGraphQLRoutes)
}

// playgroundPage loads the GraphQL Playground client against /graphql.
const playgroundPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>Mergington GraphQL Playground</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/css/index.css"/>
  <script src="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/js/middleware.js"></script>
</head>
<body>
  <div id="root"></div>
  <script>
    window.addEventListener('load', () => GraphQLPlayground.init(document.getElementById('root'), { endpoint: '/graphql' }));
  </script>
</body>
</html>`

// RegisterGraphQLRoutes mounts /graphql and the playground page.
func RegisterGraphQLRoutes(e *echo.Echo, s *api.Services) {
	schema, err := graphqlpkg.NewSchema(s.Activities)
	if err != nil {
		panic("graphql schema: " + err.Error())
	}
	e.POST("/graphql", echo.WrapHandler(graphqlpkg.Handler(schema)))
	e.GET("/playground", func(c echo.Context) error {
		return c.HTML(http.StatusOK, playgroundPage)
	})
}
