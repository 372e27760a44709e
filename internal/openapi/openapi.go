package openapi

import (
	"bytes"
	"context"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	rserr "rainstash/internal/errors"
	"rainstash/internal/httpclient"
	"rainstash/internal/model"
)

// Load reads an OpenAPI document from an http(s) URL or a local file and
// validates it.
func Load(ctx context.Context, client *httpclient.Client, spec string) (*openapi3.T, error) {
	spec = strings.TrimSpace(spec)
	loader := &openapi3.Loader{Context: ctx}
	loader.IsExternalRefsAllowed = true

	var (
		doc *openapi3.T
		err error
	)
	if httpclient.IsURL(spec) {
		var body []byte
		body, err = client.Get(ctx, spec)
		if err != nil {
			return nil, rserr.WrapSpecLoad(spec, err)
		}
		doc, err = loader.LoadFromIoReader(bytes.NewReader(body))
	} else {
		doc, err = loader.LoadFromFile(spec)
	}
	if err != nil {
		return nil, rserr.WrapSpecLoad(spec, err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, rserr.WrapSpecLoad(spec, err)
	}

	return doc, nil
}

// ExtractEndpoints lists the operations of doc ordered by path then method.
func ExtractEndpoints(doc *openapi3.T) []model.Endpoint {
	var out []model.Endpoint
	if doc == nil || doc.Paths == nil {
		return out
	}

	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}

		commonParams := item.Parameters

		addOp := func(method string, op *openapi3.Operation) {
			if op == nil {
				return
			}

			ep := model.Endpoint{
				Method:      strings.ToUpper(method),
				Path:        path,
				Summary:     strings.TrimSpace(op.Summary),
				OperationID: strings.TrimSpace(op.OperationID),
				Tags:        op.Tags,
			}

			params := append(openapi3.Parameters{}, commonParams...)
			params = append(params, op.Parameters...)

			for _, p := range params {
				if p == nil || p.Value == nil {
					continue
				}
				mp := model.Param{
					Name:        p.Value.Name,
					Required:    p.Value.Required,
					Description: strings.TrimSpace(p.Value.Description),
					Type:        schemaType(p.Value.Schema),
				}
				switch p.Value.In {
				case "path":
					mp.In = model.ParamInPath
					ep.PathParams = append(ep.PathParams, mp)
				case "query":
					mp.In = model.ParamInQuery
					ep.QueryParams = append(ep.QueryParams, mp)
				}
			}

			out = append(out, ep)
		}

		addOp("get", item.Get)
		addOp("post", item.Post)
		addOp("put", item.Put)
		addOp("patch", item.Patch)
		addOp("delete", item.Delete)
		addOp("head", item.Head)
		addOp("options", item.Options)
	}

	// Paths is a map; keep listings stable
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return methodRank(out[i].Method) < methodRank(out[j].Method)
	})
	return out
}

func methodRank(m string) int {
	switch m {
	case "GET":
		return 0
	case "POST":
		return 1
	case "PUT":
		return 2
	case "PATCH":
		return 3
	case "DELETE":
		return 4
	case "HEAD":
		return 5
	default:
		return 6
	}
}

func schemaType(ref *openapi3.SchemaRef) model.ParamType {
	if ref == nil || ref.Value == nil {
		return model.TypeUnknown
	}
	if ref.Value.Type == nil {
		return model.TypeUnknown
	}
	if ref.Value.Type.Is("string") {
		return model.TypeString
	}
	if ref.Value.Type.Is("integer") {
		return model.TypeInteger
	}
	if ref.Value.Type.Is("number") {
		return model.TypeNumber
	}
	if ref.Value.Type.Is("boolean") {
		return model.TypeBoolean
	}
	return model.TypeUnknown
}
