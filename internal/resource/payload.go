package resource

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

//--
// Request and Response payloads for the generic handler.
//
// Type parameters cannot be embedded, so the payloads hold the document
// and (un)marshal it directly.
//--

// createRequest is the request payload for a new document. Any "id" the
// client sends lands in ProtectedID and never reaches the document.
type createRequest[T any, U any] struct {
	svc *Service[T, U]

	Doc         *T
	ProtectedID json.RawMessage
}

func (p *createRequest[T, U]) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errors.New("request body must be a JSON object")
	}

	p.ProtectedID = fields["id"]
	delete(fields, "id")

	stripped, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	return json.Unmarshal(stripped, p.Doc)
}

// Bind runs after unmarshalling and applies the schema rules.
func (p *createRequest[T, U]) Bind(r *http.Request) error {
	p.ProtectedID = nil

	return p.svc.check(p.Doc)
}

// updateRequest is the request payload for a partial update.
type updateRequest[T any, U any] struct {
	svc *Service[T, U]

	Update *U
}

func (p *updateRequest[T, U]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return errors.New("request body must be a JSON object")
	}

	return json.Unmarshal(data, p.Update)
}

func (p *updateRequest[T, U]) Bind(r *http.Request) error {
	return p.svc.check(p.Update)
}

// docResponse is the response payload for a single document.
type docResponse[T any] struct {
	Doc    *T
	status int
}

func newDocResponse[T any](doc *T, status int) *docResponse[T] {
	return &docResponse[T]{Doc: doc, status: status}
}

func (rd *docResponse[T]) Render(w http.ResponseWriter, r *http.Request) error {
	if rd.Doc == nil {
		return errors.New("no document to render")
	}
	if rd.status != 0 {
		render.Status(r, rd.status)
	}

	return nil
}

func (rd *docResponse[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(rd.Doc)
}

// listResponse renders `{"<collection>": [...]}`.
type listResponse[T any] struct {
	Key  string
	Docs []T
}

func (rd *listResponse[T]) Render(w http.ResponseWriter, r *http.Request) error {
	if rd.Docs == nil {
		rd.Docs = []T{}
	}

	return nil
}

func (rd *listResponse[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]T{rd.Key: rd.Docs})
}
