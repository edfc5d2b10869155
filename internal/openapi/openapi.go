// Package openapi describes the upstream task API as an OpenAPI 3.0 document.
package openapi

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"taskfront/internal/models"
)

const (
	Version = "3.0.0"
	Title   = "taskfront api"
)

type Document struct {
	OpenAPI    string              `yaml:"openapi" json:"openapi"`
	Info       Info                `yaml:"info" json:"info"`
	Servers    []Server            `yaml:"servers,omitempty" json:"servers,omitempty"`
	Paths      map[string]PathItem `yaml:"paths" json:"paths"`
	Components Components          `yaml:"components" json:"components"`
}

type Info struct {
	Title       string `yaml:"title" json:"title"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type Server struct {
	URL string `yaml:"url" json:"url"`
}

type PathItem struct {
	Get    *Operation `yaml:"get,omitempty" json:"get,omitempty"`
	Post   *Operation `yaml:"post,omitempty" json:"post,omitempty"`
	Put    *Operation `yaml:"put,omitempty" json:"put,omitempty"`
	Delete *Operation `yaml:"delete,omitempty" json:"delete,omitempty"`
}

type Operation struct {
	Summary     string              `yaml:"summary" json:"summary"`
	Tags        []string            `yaml:"tags,omitempty" json:"tags,omitempty"`
	Parameters  []Parameter         `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBody        `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses   map[string]Response `yaml:"responses" json:"responses"`
}

type Parameter struct {
	In       string `yaml:"in" json:"in"`
	Name     string `yaml:"name" json:"name"`
	Required bool   `yaml:"required" json:"required"`
	Schema   Schema `yaml:"schema" json:"schema"`
}

type RequestBody struct {
	Required bool                 `yaml:"required" json:"required"`
	Content  map[string]MediaType `yaml:"content" json:"content"`
}

type Response struct {
	Description string               `yaml:"description" json:"description"`
	Content     map[string]MediaType `yaml:"content,omitempty" json:"content,omitempty"`
}

type MediaType struct {
	Schema Schema `yaml:"schema" json:"schema"`
}

type Schema struct {
	Ref        string            `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Type       string            `yaml:"type,omitempty" json:"type,omitempty"`
	Format     string            `yaml:"format,omitempty" json:"format,omitempty"`
	Nullable   bool              `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	Example    any               `yaml:"example,omitempty" json:"example,omitempty"`
	Enum       []string          `yaml:"enum,omitempty" json:"enum,omitempty"`
	Items      *Schema           `yaml:"items,omitempty" json:"items,omitempty"`
	Properties map[string]Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
}

type Components struct {
	Schemas map[string]Schema `yaml:"schemas" json:"schemas"`
}

// New builds the document for an upstream API reachable at serverURL.
func New(serverURL string) Document {
	doc := Document{
		OpenAPI: Version,
		Info: Info{
			Title:       Title,
			Version:     "0.1",
			Description: "Task API consumed by the taskfront web front end. The upstream service must be running for these endpoints to respond.",
		},
		Paths: map[string]PathItem{
			"/tasks": {
				Get: &Operation{
					Summary:   "Get all tasks",
					Tags:      []string{"Tasks"},
					Responses: map[string]Response{"200": jsonResponse("List of tasks", arrayOf(ref("Task")))},
				},
				Post: &Operation{
					Summary:     "Create a new task",
					Tags:        []string{"Tasks"},
					RequestBody: jsonBody(ref("CreateTask")),
					Responses:   map[string]Response{"201": {Description: "Task created"}},
				},
				Put: &Operation{
					Summary:     "Update a task",
					Tags:        []string{"Tasks"},
					RequestBody: jsonBody(ref("Task")),
					Responses:   map[string]Response{"200": {Description: "Task updated"}},
				},
			},
			"/tasks/{id}": {
				Get: &Operation{
					Summary:    "Get a task by ID",
					Tags:       []string{"Tasks"},
					Parameters: []Parameter{idParameter()},
					Responses: map[string]Response{
						"200": jsonResponse("Task found", ref("Task")),
						"404": {Description: "Task not found"},
					},
				},
				Delete: &Operation{
					Summary:    "Delete a task by ID",
					Tags:       []string{"Tasks"},
					Parameters: []Parameter{idParameter()},
					Responses:  map[string]Response{"204": {Description: "Task deleted"}},
				},
			},
		},
		Components: Components{Schemas: map[string]Schema{
			"Task":       taskSchema(true),
			"CreateTask": taskSchema(false),
		}},
	}
	if serverURL != "" {
		doc.Servers = []Server{{URL: serverURL}}
	}
	return doc
}

// YAML renders the document as YAML.
func (d Document) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON renders the document as indented JSON.
func (d Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

func taskSchema(withID bool) Schema {
	props := map[string]Schema{
		"caseNumber":  {Type: "string", Example: "123ABC"},
		"title":       {Type: "string", Example: "This is a task title"},
		"description": {Type: "string", Example: "This is a task description"},
		"status":      {Type: "string", Example: string(models.DefaultStatus), Enum: models.TaskStatusStrings()},
		"dueDate":     {Type: "string", Format: "date", Nullable: true, Example: "2025-04-20"},
	}
	if withID {
		props["id"] = Schema{Type: "integer", Format: "int64", Example: 1}
	}
	return Schema{Type: "object", Properties: props}
}

func ref(name string) Schema {
	return Schema{Ref: "#/components/schemas/" + name}
}

func arrayOf(item Schema) Schema {
	return Schema{Type: "array", Items: &item}
}

func jsonBody(schema Schema) *RequestBody {
	return &RequestBody{Required: true, Content: map[string]MediaType{"application/json": {Schema: schema}}}
}

func jsonResponse(description string, schema Schema) Response {
	return Response{Description: description, Content: map[string]MediaType{"application/json": {Schema: schema}}}
}

func idParameter() Parameter {
	return Parameter{In: "path", Name: "id", Required: true, Schema: Schema{Type: "integer"}}
}
