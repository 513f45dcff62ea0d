package firestore

// StructuredQuery scopes a server-side collection read to one exact-match
// field filter, with an optional result limit. Queries are built fresh per
// request and never persisted.
type StructuredQuery struct {
	Collection string
	FieldPath  string
	Value      Value
	Limit      int // 0 means no limit
}

// Wire shapes for the runQuery request body.

type queryBody struct {
	StructuredQuery structuredQuery `json:"structuredQuery"`
}

type structuredQuery struct {
	From  []collectionSelector `json:"from"`
	Where *filterClause        `json:"where,omitempty"`
	Limit int                  `json:"limit,omitempty"`
}

type collectionSelector struct {
	CollectionID string `json:"collectionId"`
}

type filterClause struct {
	FieldFilter fieldFilter `json:"fieldFilter"`
}

type fieldFilter struct {
	Field fieldReference `json:"field"`
	Op    string         `json:"op"`
	Value Value          `json:"value"`
}

type fieldReference struct {
	FieldPath string `json:"fieldPath"`
}

func (q StructuredQuery) body() queryBody {
	sq := structuredQuery{
		From:  []collectionSelector{{CollectionID: q.Collection}},
		Limit: q.Limit,
	}
	if q.FieldPath != "" {
		sq.Where = &filterClause{FieldFilter: fieldFilter{
			Field: fieldReference{FieldPath: q.FieldPath},
			Op:    "EQUAL",
			Value: q.Value,
		}}
	}
	return queryBody{StructuredQuery: sq}
}
