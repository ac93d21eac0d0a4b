package models

import "encoding/json"

// Submission is one stored form submission. Fields are free-form client
// data plus the three server-added keys (submittedAt, ipAddress, userAgent).
// It marshals flattened, with the document id merged into the field map.
type Submission struct {
	ID     string
	Fields map[string]any
}

func (s Submission) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(s.Fields)+1)
	for k, v := range s.Fields {
		doc[k] = v
	}
	doc["id"] = s.ID
	return json.Marshal(doc)
}

func (s *Submission) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if id, ok := doc["id"].(string); ok {
		s.ID = id
	}
	delete(doc, "id")
	s.Fields = doc
	return nil
}

type Pagination struct {
	TotalCount  int `json:"totalCount"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Limit       int `json:"limit"`
}
