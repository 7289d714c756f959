package app

import (
	"net/http"

	"gopkg.in/yaml.v3"
)

const swaggerPage = `<!DOCTYPE html>
<html>
<head>
  <title>Masterblog API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function () {
      SwaggerUIBundle({ url: "/static/masterblog.yaml", dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`

type apiDoc struct {
	OpenAPI string                          `yaml:"openapi"`
	Info    apiInfo                         `yaml:"info"`
	Paths   map[string]map[string]operation `yaml:"paths"`
}

type apiInfo struct {
	Title   string `yaml:"title"`
	Version string `yaml:"version"`
}

type operation struct {
	Summary    string              `yaml:"summary"`
	Parameters []parameter         `yaml:"parameters,omitempty"`
	Body       *requestBody        `yaml:"requestBody,omitempty"`
	Responses  map[string]response `yaml:"responses"`
}

type parameter struct {
	Name     string `yaml:"name"`
	In       string `yaml:"in"`
	Required bool   `yaml:"required,omitempty"`
	Schema   schema `yaml:"schema"`
}

type requestBody struct {
	Required bool                 `yaml:"required"`
	Content  map[string]mediaType `yaml:"content"`
}

type mediaType struct {
	Schema schema `yaml:"schema"`
}

type response struct {
	Description string `yaml:"description"`
}

type schema struct {
	Type       string            `yaml:"type"`
	Enum       []string          `yaml:"enum,omitempty"`
	Required   []string          `yaml:"required,omitempty"`
	Properties map[string]schema `yaml:"properties,omitempty"`
}

func stringParam(name, in string, required bool, enum ...string) parameter {
	return parameter{Name: name, In: in, Required: required, Schema: schema{Type: "string", Enum: enum}}
}

func postBody(required ...string) *requestBody {
	text := schema{Type: "string"}
	return &requestBody{
		Required: true,
		Content: map[string]mediaType{
			"application/json": {Schema: schema{
				Type:     "object",
				Required: required,
				Properties: map[string]schema{
					"title":   text,
					"content": text,
					"author":  text,
				},
			}},
		},
	}
}

func apiDocument() apiDoc {
	idParam := parameter{Name: "postId", In: "path", Required: true, Schema: schema{Type: "integer"}}
	return apiDoc{
		OpenAPI: "3.0.3",
		Info:    apiInfo{Title: "Masterblog API", Version: "1.0.0"},
		Paths: map[string]map[string]operation{
			"/api/posts": {
				"get": {
					Summary: "List posts, optionally sorted",
					Parameters: []parameter{
						stringParam("sort", "query", false, "title", "content", "author"),
						stringParam("direction", "query", false, "asc", "desc"),
					},
					Responses: map[string]response{"200": {"Posts"}, "400": {"Invalid sort field or direction"}},
				},
				"post": {
					Summary:   "Create a post",
					Body:      postBody("title", "content", "author"),
					Responses: map[string]response{"201": {"Created post"}, "400": {"Invalid post data"}},
				},
			},
			"/api/posts/{postId}": {
				"get": {
					Summary:    "Get a post",
					Parameters: []parameter{idParam},
					Responses:  map[string]response{"200": {"Post"}, "404": {"Post not found"}},
				},
				"put": {
					Summary:    "Update some fields of a post",
					Parameters: []parameter{idParam},
					Body:       postBody(),
					Responses:  map[string]response{"200": {"Updated post"}, "400": {"Unexpected fields"}, "404": {"Post not found"}},
				},
				"delete": {
					Summary:    "Delete a post",
					Parameters: []parameter{idParam},
					Responses:  map[string]response{"200": {"Deleted"}, "404": {"Post not found"}},
				},
			},
			"/api/posts/save": {
				"post": {
					Summary:   "Flush posts to the configured storage backend",
					Responses: map[string]response{"200": {"Saved"}, "500": {"Storage failure"}},
				},
			},
			"/api/search": {
				"get": {
					Summary: "Search posts by the first given field",
					Parameters: []parameter{
						stringParam("title", "query", false),
						stringParam("content", "query", false),
						stringParam("author", "query", false),
						stringParam("date_created", "query", false),
					},
					Responses: map[string]response{"200": {"Matching posts"}, "400": {"No search field"}, "404": {"No matches"}},
				},
			},
		},
	}
}

func openAPIDocument(w http.ResponseWriter, r *http.Request) {
	data, err := yaml.Marshal(apiDocument())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(data)
}

func swaggerUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(swaggerPage))
}
