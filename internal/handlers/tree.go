package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/bstree/bstree"
	"github.com/vancomm/bstree/internal/config"
	"github.com/vancomm/bstree/internal/metrics"
	"github.com/vancomm/bstree/internal/repository"
	"github.com/vancomm/bstree/internal/store"
)

var ErrNoStorage = errors.New("snapshot storage is not configured")

// Snapshots is implemented by [repository.Queries].
type Snapshots interface {
	SaveSnapshot(ctx context.Context, name string, entries []store.Entry) (*repository.Snapshot, error)
	LoadSnapshot(ctx context.Context, name string) ([]store.Entry, error)
	ListSnapshots(ctx context.Context) ([]repository.Snapshot, error)
	DeleteSnapshot(ctx context.Context, name string) error
}

type TreeHandler struct {
	log       logrus.FieldLogger
	store     *store.Store
	snapshots Snapshots
	ws        *config.WebSocket
	treeName  string
}

// NewTreeHandler serves s. snapshots may be nil, in which case the
// snapshot endpoints answer 503.
func NewTreeHandler(
	log logrus.FieldLogger,
	s *store.Store,
	snapshots Snapshots,
	ws *config.WebSocket,
	treeName string,
) *TreeHandler {
	return &TreeHandler{
		log:       log,
		store:     s,
		snapshots: snapshots,
		ws:        ws,
		treeName:  treeName,
	}
}

func (h TreeHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	value, ok := h.store.Get(key)
	if !ok {
		sendErrorOrLog(w, h.log, http.StatusNotFound, bstree.ErrNotFound)
		return
	}
	sendJSONOrLog(w, h.log, http.StatusOK, EntryDTO{key, value})
}

func (h TreeHandler) Set(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseValueDTO(r)
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}

	key := r.PathValue("key")
	result := SetResultDTO{Key: key, Value: dto.Value}
	if previous, replaced := h.store.Set(key, dto.Value); replaced {
		result.Replaced = true
		result.Previous = &previous
	}

	status := http.StatusOK
	if !result.Replaced {
		status = http.StatusCreated
	}
	sendJSONOrLog(w, h.log, status, result)
}

func (h TreeHandler) Insert(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseValueDTO(r)
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}

	key := r.PathValue("key")
	h.store.Insert(key, dto.Value)
	sendJSONOrLog(w, h.log, http.StatusCreated, EntryDTO{key, dto.Value})
}

func (h TreeHandler) Remove(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	value, err := h.store.Remove(key)
	if errors.Is(err, bstree.ErrNotFound) {
		sendErrorOrLog(w, h.log, http.StatusNotFound, err)
		return
	}
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusInternalServerError, err)
		return
	}
	requestLog(h.log, r).WithField("key", key).Debug("removed key")
	sendJSONOrLog(w, h.log, http.StatusOK, EntryDTO{key, value})
}

func (h TreeHandler) Traverse(w http.ResponseWriter, r *http.Request) {
	order, err := ParseTraversalDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	rendered, keys := h.store.TraverseKeys(order)
	sendJSONOrLog(w, h.log, http.StatusOK, TraversalResultDTO{
		Order:    order.String(),
		Rendered: rendered,
		Keys:     keys,
	})
}

func (h TreeHandler) Shape(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := h.store.Print(w); err != nil {
		h.log.WithError(err).Warn("unable to print tree")
	}
}

func (h TreeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, h.log, http.StatusOK, StatsDTO{
		Count:  h.store.Count(),
		Height: h.store.Height(),
	})
}

func (h TreeHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		sendErrorOrLog(w, h.log, http.StatusServiceUnavailable, ErrNoStorage)
		return
	}
	snapshots, err := h.snapshots.ListSnapshots(r.Context())
	if err != nil {
		h.log.WithError(err).Error("unable to list snapshots")
		sendErrorOrLog(w, h.log, http.StatusInternalServerError, err)
		return
	}
	results := make([]SnapshotResultDTO, len(snapshots))
	for i, s := range snapshots {
		results[i] = SnapshotResultDTO{Name: s.Name, Entries: int(s.EntryCount)}
	}
	sendJSONOrLog(w, h.log, http.StatusOK, results)
}

func (h TreeHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		sendErrorOrLog(w, h.log, http.StatusServiceUnavailable, ErrNoStorage)
		return
	}
	dto, err := ParseSnapshotDTO(r.URL.Query(), h.treeName)
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}

	entries := h.store.Entries()
	if _, err := h.snapshots.SaveSnapshot(r.Context(), dto.Name, entries); err != nil {
		metrics.SnapshotsSaved.WithLabelValues("error").Inc()
		h.log.WithError(err).WithField("name", dto.Name).Error("unable to save snapshot")
		sendErrorOrLog(w, h.log, http.StatusInternalServerError, err)
		return
	}
	metrics.SnapshotsSaved.WithLabelValues("ok").Inc()

	requestLog(h.log, r).WithFields(logrus.Fields{
		"name": dto.Name, "entries": len(entries),
	}).Info("saved snapshot")
	sendJSONOrLog(w, h.log, http.StatusOK, SnapshotResultDTO{dto.Name, len(entries)})
}

func (h TreeHandler) RestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		sendErrorOrLog(w, h.log, http.StatusServiceUnavailable, ErrNoStorage)
		return
	}
	dto, err := ParseSnapshotDTO(r.URL.Query(), h.treeName)
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}

	entries, err := h.snapshots.LoadSnapshot(r.Context(), dto.Name)
	if errors.Is(err, repository.ErrNoSnapshot) {
		sendErrorOrLog(w, h.log, http.StatusNotFound, err)
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("name", dto.Name).Error("unable to load snapshot")
		sendErrorOrLog(w, h.log, http.StatusInternalServerError, err)
		return
	}
	h.store.Restore(entries)

	requestLog(h.log, r).WithFields(logrus.Fields{
		"name": dto.Name, "entries": len(entries),
	}).Info("restored snapshot")
	sendJSONOrLog(w, h.log, http.StatusOK, SnapshotResultDTO{dto.Name, len(entries)})
}

func (h TreeHandler) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		sendErrorOrLog(w, h.log, http.StatusServiceUnavailable, ErrNoStorage)
		return
	}

	name := r.PathValue("name")
	err := h.snapshots.DeleteSnapshot(r.Context(), name)
	if errors.Is(err, repository.ErrNoSnapshot) {
		sendErrorOrLog(w, h.log, http.StatusNotFound, err)
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("name", name).Error("unable to delete snapshot")
		sendErrorOrLog(w, h.log, http.StatusInternalServerError, err)
		return
	}

	requestLog(h.log, r).WithField("name", name).Info("deleted snapshot")
	w.WriteHeader(http.StatusNoContent)
}
