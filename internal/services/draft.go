package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/a1k2f3/sellercenter-buybot/internal/draft"
	"github.com/a1k2f3/sellercenter-buybot/internal/errors"
	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	"github.com/a1k2f3/sellercenter-buybot/pkg/storeapi"
	"github.com/google/uuid"
)

// MediaView is a staged file as shown to the client, preview URL included.
type MediaView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	PreviewURL  string    `json:"preview_url"`
}

// DraftView is the client-facing snapshot of a draft.
type DraftView struct {
	ID             uuid.UUID         `json:"id"`
	Mode           string            `json:"mode"`
	ProductID      string            `json:"product_id,omitempty"`
	Fields         draft.Fields      `json:"fields"`
	Tags           []string          `json:"tags"`
	Sizes          []string          `json:"sizes"`
	Specs          []draft.SpecRow   `json:"specs"`
	Images         []MediaView       `json:"images"`
	Videos         []MediaView       `json:"videos"`
	ExistingImages []models.MediaRef `json:"existing_images,omitempty"`
	ExistingVideos []models.MediaRef `json:"existing_videos,omitempty"`
	Categories     []models.Category `json:"categories"`
	TagOptions     []models.Tag      `json:"tag_options"`
	Warnings       []string          `json:"warnings,omitempty"`
	Errors         map[string]string `json:"errors,omitempty"`
	Submitting     bool              `json:"submitting"`
}

type SubmitResult struct {
	Product  *models.Product `json:"product,omitempty"`
	Redirect string          `json:"redirect"`
}

type DraftService interface {
	Open(ctx context.Context, sess *models.Session, productID string) (*DraftView, error)
	Get(ctx context.Context, sess *models.Session, draftID uuid.UUID, withValidation bool) (*DraftView, error)
	SetFields(ctx context.Context, sess *models.Session, draftID uuid.UUID, fields draft.Fields) (*DraftView, error)
	ToggleTag(ctx context.Context, sess *models.Session, draftID uuid.UUID, tagID string) (*DraftView, error)
	ToggleSize(ctx context.Context, sess *models.Session, draftID uuid.UUID, size string) (*DraftView, error)
	AppendSpecRow(ctx context.Context, sess *models.Session, draftID uuid.UUID) (*DraftView, error)
	SetSpecRow(ctx context.Context, sess *models.Session, draftID uuid.UUID, index int, row draft.SpecRow) (*DraftView, error)
	RemoveSpecRow(ctx context.Context, sess *models.Session, draftID uuid.UUID, index int) (*DraftView, error)
	Stage(ctx context.Context, sess *models.Session, draftID uuid.UUID, batch []draft.Incoming) (*DraftView, error)
	MediaContent(ctx context.Context, sess *models.Session, draftID, mediaID uuid.UUID) (*draft.StagedFile, error)
	Unstage(ctx context.Context, sess *models.Session, draftID, mediaID uuid.UUID) (*DraftView, error)
	Submit(ctx context.Context, sess *models.Session, draftID uuid.UUID, onSave func(*models.Product)) (*SubmitResult, error)
	Discard(ctx context.Context, sess *models.Session, draftID uuid.UUID) error
}

type draftService struct {
	api      storeapi.Client
	registry *draft.Registry
	limits   draft.Limits
}

func NewDraftService(api storeapi.Client, registry *draft.Registry, limits draft.Limits) DraftService {
	return &draftService{
		api:      api,
		registry: registry,
		limits:   limits,
	}
}

// Open builds a new draft, empty or prefilled from an existing product, and
// snapshots the reference data. An expired session aborts; a plain fetch
// failure leaves the selection lists empty with a user-visible warning so the
// rest of the form stays usable.
func (s *draftService) Open(ctx context.Context, sess *models.Session, productID string) (*DraftView, error) {

	if sess == nil || sess.Token == "" {
		return nil, errors.SessionExpiredError("Please log in to edit products")
	}

	var d *draft.Draft

	if productID != "" {
		product, err := s.api.GetProduct(ctx, sess.Token, productID)
		if err != nil {
			return nil, err
		}

		d = draft.FromProduct(sess.ID, product)
	} else {
		d = draft.New(sess.ID)
	}

	categories, err := s.api.Categories(ctx, sess.Token)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeSessionExpired {
			return nil, err
		}

		d.Warnings = append(d.Warnings, "Failed to load categories")
	}

	tags, err := s.api.Tags(ctx, sess.Token)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeSessionExpired {
			return nil, err
		}

		d.Warnings = append(d.Warnings, "Failed to load tags")
	}

	d.Categories = categories
	d.TagOptions = tags

	s.registry.Put(d)

	d.Lock()
	defer d.Unlock()

	return s.view(d, false), nil
}

// lockedDraft resolves the draft and takes its lock. When forUpdate is set, a
// draft with a submission in flight is rejected: the form is read-only until
// the pipeline settles.
func (s *draftService) lockedDraft(sess *models.Session, draftID uuid.UUID, forUpdate bool) (*draft.Draft, error) {

	d, err := s.registry.Get(draftID, sess.ID)
	if err != nil {
		return nil, err
	}

	d.Lock()

	if forUpdate && d.Submitting() {
		d.Unlock()
		return nil, errors.ConflictError("A submission is already in progress for this draft")
	}

	return d, nil
}

func (s *draftService) Get(ctx context.Context, sess *models.Session, draftID uuid.UUID, withValidation bool) (*DraftView, error) {

	d, err := s.lockedDraft(sess, draftID, false)
	if err != nil {
		return nil, err
	}
	defer d.Unlock()

	return s.view(d, withValidation), nil
}

func (s *draftService) SetFields(ctx context.Context, sess *models.Session, draftID uuid.UUID, fields draft.Fields) (*DraftView, error) {

	d, err := s.lockedDraft(sess, draftID, true)
	if err != nil {
		return nil, err
	}
	defer d.Unlock()

	d.Fields = fields

	return s.view(d, false), nil
}

func (s *draftService) ToggleTag(ctx context.Context, sess *models.Session, draftID uuid.UUID, tagID string) (*DraftView, error) {

	d, err := s.lockedDraft(sess, draftID, true)
	if err != nil {
		return nil, err
	}
	defer d.Unlock()

	d.ToggleTag(tagID)

	return s.view(d, false), nil
}

func (s *draftService) ToggleSize(ctx context.Context, sess *models.Session, draftID uuid.UUID, size string) (*DraftView, error) {

	d, err := s.lockedDraft(sess, draftID, true)
	if err != nil {
		return nil, err
	}
	defer d.Unlock()

	d.ToggleSize(size)

	return s.view(d, false), nil
}

func (s *draftService) AppendSpecRow(ctx context.Context, sess *models.Session, draftID uuid.UUID) (*DraftView, error) {

	d, err := s.lockedDraft(sess, draftID, true)
	if err != nil {
		return nil, err
	}
	defer d.Unlock()

	d.AppendSpecRow()

	return s.view(d, false), nil
}

func (s *draftService) SetSpecRow(ctx context.Context, sess *models.Session, draftID uuid.UUID, index int, row draft.SpecRow) (*DraftView, error) {

	d, err := s.lockedDraft(sess, draftID, true)
	if err != nil {
		return nil, err
	}
	defer d.Unlock()

	if !d.SetSpecRow(index, row.Key, row.Value) {
		return nil, errors.BadRequestError("Specification row does not exist")
	}

	return s.view(d, false), nil
}

// RemoveSpecRow is a no-op, not an error, when only one row remains.
func (s *draftService) RemoveSpecRow(ctx context.Context, sess *models.Session, draftID uuid.UUID, index int) (*DraftView, error) {

	d, err := s.lockedDraft(sess, draftID, true)
	if err != nil {
		return nil, err
	}
	defer d.Unlock()

	d.RemoveSpecRow(index)

	return s.view(d, false), nil
}

func (s *draftService) Stage(ctx context.Context, sess *models.Session, draftID uuid.UUID, batch []draft.Incoming) (*DraftView, error) {

	d, err := s.lockedDraft(sess, draftID, true)
	if err != nil {
		return nil, err
	}
	defer d.Unlock()

	result := d.Stage(batch, s.limits)
	d.Warnings = append(d.Warnings, result.Warnings...)

	return s.view(d, false), nil
}

func (s *draftService) MediaContent(ctx context.Context, sess *models.Session, draftID, mediaID uuid.UUID) (*draft.StagedFile, error) {

	d, err := s.lockedDraft(sess, draftID, false)
	if err != nil {
		return nil, err
	}
	defer d.Unlock()

	file, ok := d.Media(mediaID)
	if !ok {
		return nil, errors.NotFoundError("Staged media not found")
	}

	return file, nil
}

func (s *draftService) Unstage(ctx context.Context, sess *models.Session, draftID, mediaID uuid.UUID) (*DraftView, error) {

	d, err := s.lockedDraft(sess, draftID, true)
	if err != nil {
		return nil, err
	}
	defer d.Unlock()

	d.Unstage(mediaID)

	return s.view(d, false), nil
}

// Submit runs the submission pipeline in order: local guards, payload build,
// one backend call, then discard. On any failure the draft stays intact and
// returns to idle.
func (s *draftService) Submit(ctx context.Context, sess *models.Session, draftID uuid.UUID, onSave func(*models.Product)) (*SubmitResult, error) {

	d, err := s.registry.BeginSubmit(draftID, sess.ID)
	if err != nil {
		return nil, err
	}

	// While the draft is marked submitting every mutation is rejected, so the
	// pipeline reads a consistent draft without holding its lock across the
	// backend call.

	// image invariant first: no network call happens when it fails
	if d.TotalImages() < 1 {
		s.registry.EndSubmit(draftID)
		return nil, errors.ValidationError("At least one product image is required")
	}

	record, fieldErrors := d.Validate()
	if fieldErrors != nil {
		s.registry.EndSubmit(draftID)
		return nil, validationError(fieldErrors)
	}

	// session guard before any network call
	if sess.Token == "" || sess.StoreID == "" {
		s.registry.EndSubmit(draftID)
		return nil, errors.SessionExpiredError("Please log in to save products")
	}

	payload := buildPayload(record, d, sess.StoreID)

	var product *models.Product

	if d.ProductID == "" {
		product, err = s.api.CreateProduct(ctx, sess.Token, payload)
	} else {
		product, err = s.api.UpdateProduct(ctx, sess.Token, d.ProductID, payload)
	}

	if err != nil {
		// back to idle with every field and staged file preserved
		s.registry.EndSubmit(draftID)
		return nil, err
	}

	if onSave != nil {
		onSave(product)
	}

	s.registry.Remove(draftID)

	return &SubmitResult{
		Product:  product,
		Redirect: "/dashboard/products",
	}, nil
}

func (s *draftService) Discard(ctx context.Context, sess *models.Session, draftID uuid.UUID) error {
	return s.registry.Discard(draftID, sess.ID)
}

// buildPayload serializes the validated record in a fixed field order, tags
// and sizes as repeated keys, surviving specification rows as one JSON object
// field, then every staged file, images before videos, in selection order.
func buildPayload(record *draft.Record, d *draft.Draft, storeID string) *storeapi.ProductPayload {

	payload := &storeapi.ProductPayload{}

	payload.AddField("name", record.Name)
	payload.AddField("description", record.Description)
	payload.AddField("price", strconv.FormatFloat(record.Price, 'f', -1, 64))

	if record.DiscountPrice != nil {
		payload.AddField("discountPrice", strconv.FormatFloat(*record.DiscountPrice, 'f', -1, 64))
	}

	// the marketplace quotes every price in rupees
	payload.AddField("currency", "RS")
	payload.AddField("stock", strconv.Itoa(record.Stock))
	payload.AddField("status", "active")
	payload.AddField("sku", record.SKU)
	payload.AddField("category", record.Category)

	if record.Warranty != "" {
		payload.AddField("warranty", record.Warranty)
	}

	if record.AgeGroup != nil {
		payload.AddField("ageGroup", *record.AgeGroup)
	}

	payload.AddField("brand", storeID)

	for _, tagID := range record.Tags {
		payload.AddField("tags", tagID)
	}

	for _, size := range record.Sizes {
		payload.AddField("sizes", size)
	}

	if len(record.Specs) > 0 {
		specs := make(map[string]string, len(record.Specs))
		for _, row := range record.Specs {
			specs[row.Key] = row.Value
		}

		encoded, err := json.Marshal(specs)
		if err == nil {
			payload.AddField("specifications", string(encoded))
		}
	}

	for _, file := range d.Images {
		payload.AddFile("images", file.Name, file.ContentType, file.Content)
	}

	for _, file := range d.Videos {
		payload.AddFile("videos", file.Name, file.ContentType, file.Content)
	}

	return payload
}

func validationError(fieldErrors map[string]string) error {

	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	details := make([]string, 0, len(fields))
	for _, field := range fields {
		details = append(details, fmt.Sprintf("%s: %s", field, fieldErrors[field]))
	}

	return errors.ValidationError("Please fill all required fields correctly").
		WithDetail(strings.Join(details, "; "))
}

func (s *draftService) view(d *draft.Draft, withValidation bool) *DraftView {

	mode := "create"
	if d.ProductID != "" {
		mode = "edit"
	}

	view := &DraftView{
		ID:             d.ID,
		Mode:           mode,
		ProductID:      d.ProductID,
		Fields:         d.Fields,
		Tags:           append([]string(nil), d.Tags...),
		Sizes:          append([]string(nil), d.Sizes...),
		Specs:          append([]draft.SpecRow(nil), d.Specs...),
		ExistingImages: d.ExistingImages,
		ExistingVideos: d.ExistingVideos,
		Categories:     d.Categories,
		TagOptions:     d.TagOptions,
		Warnings:       d.Warnings,
		Submitting:     d.Submitting(),
	}

	for _, file := range d.Images {
		view.Images = append(view.Images, mediaView(d.ID, file))
	}

	for _, file := range d.Videos {
		view.Videos = append(view.Videos, mediaView(d.ID, file))
	}

	if withValidation {
		if _, fieldErrors := d.Validate(); fieldErrors != nil {
			view.Errors = fieldErrors
		}
	}

	return view
}

func mediaView(draftID uuid.UUID, file draft.StagedFile) MediaView {
	return MediaView{
		ID:          file.ID,
		Name:        file.Name,
		ContentType: file.ContentType,
		Size:        file.Size,
		PreviewURL:  fmt.Sprintf("/api/v1/drafts/%s/media/%s", draftID, file.ID),
	}
}
