package model

import "strings"

type ParamLocation string

type ParamType string

const (
	ParamInPath  ParamLocation = "path"
	ParamInQuery ParamLocation = "query"

	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeUnknown ParamType = "unknown"
)

type Param struct {
	Name        string
	In          ParamLocation
	Required    bool
	Type        ParamType
	Description string
}

// Endpoint is one operation of an OpenAPI document.
type Endpoint struct {
	Method      string
	Path        string
	Summary     string
	OperationID string
	Tags        []string

	PathParams  []Param
	QueryParams []Param
}

// DisplayName is the label endpoints are searched by, e.g. "GET /pets/{id}".
func (e Endpoint) DisplayName() string {
	return strings.ToUpper(e.Method) + " " + e.Path
}

// Label is the summary, falling back to the operation id.
func (e Endpoint) Label() string {
	if s := strings.TrimSpace(e.Summary); s != "" {
		return s
	}
	return e.OperationID
}

// Fields lists the endpoint for display. Parameters are rendered as
// "name (type, required)".
func (e Endpoint) Fields() [][2]string {
	fields := [][2]string{
		{"Method", strings.ToUpper(e.Method)},
		{"Path", e.Path},
		{"Summary", e.Summary},
		{"Operation ID", e.OperationID},
		{"Tags", strings.Join(e.Tags, ", ")},
	}
	for _, p := range e.PathParams {
		fields = append(fields, [2]string{"Path Param", p.describe()})
	}
	for _, p := range e.QueryParams {
		fields = append(fields, [2]string{"Query Param", p.describe()})
	}
	return fields
}

func (p Param) describe() string {
	s := p.Name + " (" + string(p.Type)
	if p.Required {
		s += ", required"
	}
	s += ")"
	if p.Description != "" {
		s += " " + p.Description
	}
	return s
}
