package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"BrainrotDex/internal/api"
	"BrainrotDex/internal/config"
	"BrainrotDex/internal/model"
	"BrainrotDex/internal/service"
	"BrainrotDex/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxImportSize: предел тела запроса импорта.
const maxImportSize = 10 << 20

// BrainrotHandler обрабатывает каталог, избранное и перенос данных.
type BrainrotHandler struct {
	Catalog  *service.Catalog
	Transfer *service.Transfer
	Logger   *zap.SugaredLogger
	Config   *config.Config
}

// NewBrainrotHandler создаёт хендлер каталога
func NewBrainrotHandler(catalog *service.Catalog, transfer *service.Transfer, logger *zap.SugaredLogger, cfg *config.Config) *BrainrotHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &BrainrotHandler{Catalog: catalog, Transfer: transfer, Logger: logger, Config: cfg}
}

// ListResponse: страница объединённого списка со статистикой.
type ListResponse struct {
	service.Page
	Stats    model.Stats `json:"stats"`
	Warnings []string    `json:"warnings,omitempty"`
}

// ToggleResponse: состояние избранного после переключения.
type ToggleResponse struct {
	Ref      model.Ref `json:"ref"`
	Favorite bool      `json:"favorite"`
}

// List отдаёт страницу объединённого списка
func (h *BrainrotHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	size := service.NormalizePageSize(queryInt(r, "size", h.Config.PageSize))

	listing, err := h.Catalog.List(r.Context())
	if err != nil {
		h.fail(w, "List", err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{
		Page:     service.Paginate(listing.Entries, page, size),
		Stats:    h.Catalog.Stats(listing.Entries),
		Warnings: listing.Warnings,
	})
}

// Create добавляет локальную запись
func (h *BrainrotHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.Item
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	created, err := h.Catalog.Create(in)
	if err != nil {
		h.fail(w, "Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, model.LocalEntry(created))
}

// Get отдаёт запись по ссылке local_<id> / api_<id>
func (h *BrainrotHandler) Get(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.ref(w, r, "ref")
	if !ok {
		return
	}
	e, err := h.Catalog.Get(r.Context(), ref)
	if err != nil {
		h.fail(w, "Get", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Update применяет частичное обновление к локальной записи
func (h *BrainrotHandler) Update(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.ref(w, r, "ref")
	if !ok {
		return
	}
	var patch model.ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.Logger.Warnw("Update: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if patch.Empty() {
		http.Error(w, "empty patch", http.StatusBadRequest)
		return
	}
	updated, err := h.Catalog.Update(ref, patch)
	if err != nil {
		h.fail(w, "Update", err)
		return
	}
	writeJSON(w, http.StatusOK, model.LocalEntry(updated))
}

// Delete удаляет локальную запись вместе с избранным
func (h *BrainrotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.ref(w, r, "ref")
	if !ok {
		return
	}
	removed, err := h.Catalog.Delete(ref)
	if err != nil {
		h.fail(w, "Delete", err)
		return
	}
	if !removed {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Favorites отдаёт избранное
func (h *BrainrotHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Favorites())
}

// ToggleFavorite переключает избранное для записи
func (h *BrainrotHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.ref(w, r, "ref")
	if !ok {
		return
	}
	on, err := h.Catalog.ToggleFavorite(r.Context(), ref)
	if err != nil {
		h.fail(w, "ToggleFavorite", err)
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{Ref: ref, Favorite: on})
}

// RemoveFavorite убирает запись из избранного. Ref без префикса считается локальным.
func (h *BrainrotHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.ref(w, r, "ref")
	if !ok {
		return
	}
	if err := h.Catalog.RemoveFavorite(ref); err != nil {
		h.fail(w, "RemoveFavorite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export отдаёт резервную копию файлом
func (h *BrainrotHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.Transfer.FileName()+`"`)
	if err := h.Transfer.Export(w); err != nil {
		// заголовки уже могли уйти, остаётся только лог
		h.Logger.Errorw("Export: failed", "error", err)
	}
}

// Import заменяет локальные данные содержимым резервной копии
func (h *BrainrotHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	res, err := h.Transfer.Import(r.Body)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, "snapshot too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.fail(w, "Import", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SeedSamples добавляет демонстрационные записи в пустой каталог
func (h *BrainrotHandler) SeedSamples(w http.ResponseWriter, r *http.Request) {
	n, err := h.Catalog.SeedSamples()
	if err != nil {
		h.fail(w, "SeedSamples", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"seeded": n})
}

// ClearAll удаляет все локальные данные
func (h *BrainrotHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.ClearAll(); err != nil {
		h.fail(w, "ClearAll", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BrainrotHandler) ref(w http.ResponseWriter, r *http.Request, param string) (model.Ref, bool) {
	ref, err := model.ParseRef(chi.URLParam(r, param))
	if err != nil {
		h.Logger.Warnw("invalid ref", "value", chi.URLParam(r, param), "error", err)
		http.Error(w, "invalid ref", http.StatusBadRequest)
		return model.Ref{}, false
	}
	return ref, true
}

// fail переводит ошибку сервиса в HTTP-статус.
func (h *BrainrotHandler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidItem), errors.Is(err, service.ErrInvalidSnapshot), errors.Is(err, store.ErrDuplicateID):
		h.Logger.Warnw(op+": rejected", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrReadOnly):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, store.ErrNotFound), errors.Is(err, api.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrRemoteDisabled):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, api.ErrUnavailable):
		h.Logger.Warnw(op+": remote api error", "error", err)
		http.Error(w, "remote api unavailable", http.StatusBadGateway)
	default:
		h.Logger.Errorw(op+": service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
