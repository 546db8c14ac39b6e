package entity

import "encoding/json"

// Well-known document fields. Everything else stored in a document is
// opaque to this service.
const (
	FieldEmail       = "email"
	FieldRole        = "role"
	FieldAuthorEmail = "authorEmail"
	FieldPostID      = "postId"
)

// Document is a schemaless resource record. The store assigns the ID;
// all other attributes live in Fields and pass through untouched.
type Document struct {
	ID     string
	Fields map[string]any
}

// GetString returns the named field when it is a string, else "".
func (d Document) GetString(key string) string {
	if v, ok := d.Fields[key].(string); ok {
		return v
	}
	return ""
}

// MarshalJSON flattens the record the way the wire format expects:
// the attributes at the top level with the store id as _id.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+1)
	for k, v := range d.Fields {
		out[k] = v
	}
	out["_id"] = d.ID
	return json.Marshal(out)
}
