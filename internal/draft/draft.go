// Package draft holds the in-memory, unsaved representation of a product
// being created or edited. A draft exists only for the duration of one
// editing session: it is mutated by that session alone and discarded on
// successful submission or explicit cancel.
package draft

import (
	"fmt"
	"sync"
	"time"

	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	"github.com/google/uuid"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// StagedFile is a user-selected upload held client-side until submission.
type StagedFile struct {
	ID          uuid.UUID `json:"id"`
	Kind        MediaKind `json:"kind"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Content     []byte    `json:"-"`
}

// SpecRow is one key/value specification entry. Keys need not be unique while
// editing; blank rows are filtered out at submission.
type SpecRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Fields carries scalar inputs exactly as typed. Numeric fields stay raw text
// until validation, where coercion failure becomes a field error.
type Fields struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         string  `json:"price"`
	DiscountPrice string  `json:"discount_price"`
	Stock         string  `json:"stock"`
	SKU           string  `json:"sku"`
	Category      string  `json:"category"`
	Warranty      string  `json:"warranty"`
	AgeGroup      *string `json:"age_group"`
}

// Limits bounds the media staging area.
type Limits struct {
	MaxImages    int
	MaxVideos    int
	MaxMediaSize int64
}

type Draft struct {
	// mu serializes access to the mutable state below. Callers hold it for a
	// whole operation, snapshot building included; the draft's own methods
	// assume it is held.
	mu sync.Mutex

	ID        uuid.UUID
	SessionID uuid.UUID

	// ProductID is empty in create mode; set, submission updates in place.
	ProductID string

	Fields Fields
	Tags   []string
	Sizes  []string
	Specs  []SpecRow

	Images []StagedFile
	Videos []StagedFile

	// Existing media fetched with the product. Display-only: it counts toward
	// the at-least-one-image invariant but cannot be removed here.
	ExistingImages []models.MediaRef
	ExistingVideos []models.MediaRef

	// reference data snapshot, fetched once when the draft opens
	Categories []models.Category
	TagOptions []models.Tag

	Warnings []string

	submitting bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New returns an empty draft with the single blank specification row the
// editor always shows.
func New(sessionID uuid.UUID) *Draft {
	now := time.Now()

	return &Draft{
		ID:        uuid.New(),
		SessionID: sessionID,
		Specs:     []SpecRow{{}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FromProduct prefills a draft from a fetched product for edit mode.
func FromProduct(sessionID uuid.UUID, product *models.Product) *Draft {

	d := New(sessionID)
	d.ProductID = product.ID

	d.Fields = Fields{
		Name:        product.Name,
		Description: product.Description,
		Price:       trimFloat(product.Price),
		Stock:       fmt.Sprintf("%d", product.Stock),
		SKU:         product.SKU,
		Warranty:    product.Warranty,
		AgeGroup:    product.AgeGroup,
	}

	if product.DiscountPrice > 0 {
		d.Fields.DiscountPrice = trimFloat(product.DiscountPrice)
	}

	if product.Category != nil {
		d.Fields.Category = product.Category.ID
	}

	for _, tag := range product.Tags {
		d.Tags = append(d.Tags, tag.ID)
	}

	d.Sizes = append(d.Sizes, product.Sizes...)

	for key, value := range product.Specifications {
		d.Specs = append(d.Specs, SpecRow{Key: key, Value: value})
	}

	// keep the trailing blank row only when nothing else is there
	if len(d.Specs) > 1 {
		d.Specs = d.Specs[1:]
	}

	d.ExistingImages = append(d.ExistingImages, product.Images...)
	d.ExistingVideos = append(d.ExistingVideos, product.Videos...)

	return d
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)

	return s
}

func (d *Draft) Lock()   { d.mu.Lock() }
func (d *Draft) Unlock() { d.mu.Unlock() }

func (d *Draft) touch() {
	d.UpdatedAt = time.Now()
}

// ToggleTag adds the tag when absent and removes it when present. Returns
// whether the tag is selected afterwards.
func (d *Draft) ToggleTag(tagID string) bool {
	d.touch()

	for i, id := range d.Tags {
		if id == tagID {
			d.Tags = append(d.Tags[:i], d.Tags[i+1:]...)
			return false
		}
	}

	d.Tags = append(d.Tags, tagID)

	return true
}

func (d *Draft) ToggleSize(size string) bool {
	d.touch()

	for i, s := range d.Sizes {
		if s == size {
			d.Sizes = append(d.Sizes[:i], d.Sizes[i+1:]...)
			return false
		}
	}

	d.Sizes = append(d.Sizes, size)

	return true
}

// AppendSpecRow adds one empty row.
func (d *Draft) AppendSpecRow() {
	d.touch()
	d.Specs = append(d.Specs, SpecRow{})
}

func (d *Draft) SetSpecRow(index int, key, value string) bool {
	if index < 0 || index >= len(d.Specs) {
		return false
	}

	d.touch()
	d.Specs[index] = SpecRow{Key: key, Value: value}

	return true
}

// RemoveSpecRow drops the row at index. The list never empties while editing:
// removal is a no-op when only one row remains or the index is out of range.
func (d *Draft) RemoveSpecRow(index int) bool {
	if len(d.Specs) <= 1 {
		return false
	}

	if index < 0 || index >= len(d.Specs) {
		return false
	}

	d.touch()
	d.Specs = append(d.Specs[:index], d.Specs[index+1:]...)

	return true
}

// FilteredSpecs returns the rows that survive submission filtering: a row
// with an empty key or empty value is dropped.
func (d *Draft) FilteredSpecs() []SpecRow {

	var rows []SpecRow

	for _, row := range d.Specs {
		if row.Key == "" || row.Value == "" {
			continue
		}

		rows = append(rows, row)
	}

	return rows
}

// TotalImages counts existing plus newly staged images for the ≥1 invariant.
func (d *Draft) TotalImages() int {
	return len(d.ExistingImages) + len(d.Images)
}
