package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/vancomm/bstree/bstree"
)

const maxValueBytes = 1 << 20

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type ValueDTO struct {
	Value string `schema:"value"`
}

// ParseValueDTO takes the value from the request body when there is one,
// otherwise from the value query parameter.
func ParseValueDTO(r *http.Request) (ValueDTO, error) {
	var dto ValueDTO
	if r.Body != nil && r.ContentLength != 0 {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxValueBytes+1))
		if err != nil {
			return dto, fmt.Errorf("unable to read body: %w", err)
		}
		if len(body) > maxValueBytes {
			return dto, errors.New("value too large")
		}
		if len(body) > 0 {
			dto.Value = string(body)
			return dto, nil
		}
	}
	query := r.URL.Query()
	if !query.Has("value") {
		return dto, errors.New("missing value")
	}
	err := decoder.Decode(&dto, query)
	return dto, err
}

type TraversalDTO struct {
	Order string `schema:"order"`
}

func ParseTraversalDTO(src map[string][]string) (bstree.Order, error) {
	dto := TraversalDTO{Order: bstree.InOrder.String()}
	if err := decoder.Decode(&dto, src); err != nil {
		return 0, err
	}
	order, ok := bstree.ParseOrder(dto.Order)
	if !ok {
		return 0, fmt.Errorf("unknown order %q, expected one of pre, in, post, bfs", dto.Order)
	}
	return order, nil
}

type SnapshotDTO struct {
	Name string `schema:"name"`
}

func ParseSnapshotDTO(src map[string][]string, fallback string) (SnapshotDTO, error) {
	dto := SnapshotDTO{Name: fallback}
	err := decoder.Decode(&dto, src)
	if dto.Name == "" {
		dto.Name = fallback
	}
	return dto, err
}

type EntryDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SetResultDTO struct {
	Key      string  `json:"key"`
	Value    string  `json:"value"`
	Replaced bool    `json:"replaced"`
	Previous *string `json:"previous,omitempty"`
}

type TraversalResultDTO struct {
	Order    string   `json:"order"`
	Rendered string   `json:"rendered"`
	Keys     []string `json:"keys"`
}

type StatsDTO struct {
	Count  int `json:"count"`
	Height int `json:"height"`
}

type SnapshotResultDTO struct {
	Name    string `json:"name"`
	Entries int    `json:"entries"`
}
