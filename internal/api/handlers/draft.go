package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a1k2f3/sellercenter-buybot/internal/api/middleware"
	"github.com/a1k2f3/sellercenter-buybot/internal/draft"
	"github.com/a1k2f3/sellercenter-buybot/internal/errors"
	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	service "github.com/a1k2f3/sellercenter-buybot/internal/services"
	"github.com/a1k2f3/sellercenter-buybot/internal/utils"
	"github.com/a1k2f3/sellercenter-buybot/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// incoming multipart uploads are parsed up to this many bytes in memory
const maxUploadMemory = 32 << 20

type DraftHandler struct {
	draftService service.DraftService
	validator    *validator.Validate
}

func NewDraftHandler(draftService service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService, validator: validator.New()}
}

type openDraftRequest struct {
	ProductID string `json:"product_id"`
}

// Open starts an editing session: an empty draft, or one prefilled from an
// existing product when product_id is given.
func (h *DraftHandler) Open() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		sess := middleware.SessionFromContext(r.Context())

		var req openDraftRequest
		// an empty body opens a blank draft
		if r.ContentLength > 0 {
			if err := utils.DecodeJSONBody(r, &req); err != nil {
				response.Error(w, errors.BadRequestError(err.Error()))
				return
			}
		}

		view, err := h.draftService.Open(r.Context(), sess, req.ProductID)
		if err != nil {
			logger.Error("Failed to open draft", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Draft opened", slog.String("draftId", view.ID.String()), slog.String("mode", view.Mode))
		response.Success(w, http.StatusCreated, view)
	}
}

func (h *DraftHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := middleware.SessionFromContext(r.Context())

		draftID, ok := h.draftID(w, r)
		if !ok {
			return
		}

		withValidation := r.URL.Query().Get("validate") == "1"

		view, err := h.draftService.Get(r.Context(), sess, draftID, withValidation)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *DraftHandler) SetFields() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := middleware.SessionFromContext(r.Context())

		draftID, ok := h.draftID(w, r)
		if !ok {
			return
		}

		var fields draft.Fields
		if err := utils.DecodeJSONBody(r, &fields); err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		view, err := h.draftService.SetFields(r.Context(), sess, draftID, fields)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *DraftHandler) ToggleTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := middleware.SessionFromContext(r.Context())

		draftID, ok := h.draftID(w, r)
		if !ok {
			return
		}

		tagID := r.PathValue("tagId")
		if tagID == "" {
			response.Error(w, errors.BadRequestError("Invalid tag id"))
			return
		}

		view, err := h.draftService.ToggleTag(r.Context(), sess, draftID, tagID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *DraftHandler) ToggleSize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := middleware.SessionFromContext(r.Context())

		draftID, ok := h.draftID(w, r)
		if !ok {
			return
		}

		size := r.PathValue("size")
		if size == "" {
			response.Error(w, errors.BadRequestError("Invalid size"))
			return
		}

		view, err := h.draftService.ToggleSize(r.Context(), sess, draftID, size)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *DraftHandler) AppendSpecRow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := middleware.SessionFromContext(r.Context())

		draftID, ok := h.draftID(w, r)
		if !ok {
			return
		}

		view, err := h.draftService.AppendSpecRow(r.Context(), sess, draftID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *DraftHandler) SetSpecRow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := middleware.SessionFromContext(r.Context())

		draftID, ok := h.draftID(w, r)
		if !ok {
			return
		}

		index, err := strconv.Atoi(r.PathValue("index"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid specification row index"))
			return
		}

		var row draft.SpecRow
		if err := utils.DecodeJSONBody(r, &row); err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		view, err := h.draftService.SetSpecRow(r.Context(), sess, draftID, index, row)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *DraftHandler) RemoveSpecRow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := middleware.SessionFromContext(r.Context())

		draftID, ok := h.draftID(w, r)
		if !ok {
			return
		}

		index, err := strconv.Atoi(r.PathValue("index"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid specification row index"))
			return
		}

		view, err := h.draftService.RemoveSpecRow(r.Context(), sess, draftID, index)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// StageMedia accepts files from a multipart form (field name "files") and
// stages them on the draft, honoring the kind filter and count limits.
func (h *DraftHandler) StageMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		sess := middleware.SessionFromContext(r.Context())

		draftID, ok := h.draftID(w, r)
		if !ok {
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			response.Error(w, errors.BadRequestError("Invalid upload"))
			return
		}

		if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
			response.Error(w, errors.BadRequestError("No files in upload"))
			return
		}

		var batch []draft.Incoming

		for _, header := range r.MultipartForm.File["files"] {

			file, err := header.Open()
			if err != nil {
				response.Error(w, errors.BadRequestError("Unreadable upload"))
				return
			}

			content, err := readAllAndClose(file)
			if err != nil {
				response.Error(w, errors.BadRequestError("Unreadable upload"))
				return
			}

			batch = append(batch, draft.Incoming{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Content:     content,
			})
		}

		view, err := h.draftService.Stage(r.Context(), sess, draftID, batch)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Media staged", slog.String("draftId", draftID.String()), slog.Int("files", len(batch)))
		response.Success(w, http.StatusOK, view)
	}
}

// Media serves the staged file bytes behind a preview URL.
func (h *DraftHandler) Media() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := middleware.SessionFromContext(r.Context())

		draftID, ok := h.draftID(w, r)
		if !ok {
			return
		}

		mediaID, err := uuid.Parse(r.PathValue("mediaId"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid media id"))
			return
		}

		file, err := h.draftService.MediaContent(r.Context(), sess, draftID, mediaID)
		if err != nil {
			response.Error(w, err)
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
		w.WriteHeader(http.StatusOK)
		w.Write(file.Content)
	}
}

func (h *DraftHandler) Unstage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := middleware.SessionFromContext(r.Context())

		draftID, ok := h.draftID(w, r)
		if !ok {
			return
		}

		mediaID, err := uuid.Parse(r.PathValue("mediaId"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid media id"))
			return
		}

		view, err := h.draftService.Unstage(r.Context(), sess, draftID, mediaID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// Submit runs the submission pipeline and reports where to navigate next.
func (h *DraftHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		sess := middleware.SessionFromContext(r.Context())

		draftID, ok := h.draftID(w, r)
		if !ok {
			return
		}

		onSave := func(product *models.Product) {
			id := ""
			if product != nil {
				id = product.ID
			}

			logger.Info("Product saved", slog.String("draftId", draftID.String()), slog.String("productId", id))
		}

		result, err := h.draftService.Submit(r.Context(), sess, draftID, onSave)
		if err != nil {
			logger.Warn("Submission failed", slog.String("draftId", draftID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *DraftHandler) Discard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := middleware.SessionFromContext(r.Context())

		draftID, ok := h.draftID(w, r)
		if !ok {
			return
		}

		if err := h.draftService.Discard(r.Context(), sess, draftID); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"message": "Draft discarded"})
	}
}

func (h *DraftHandler) draftID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response.Error(w, errors.BadRequestError("Invalid draft id"))
		return uuid.Nil, false
	}

	return id, true
}
