package draft

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Incoming is a file as received from the client, before kind filtering.
type Incoming struct {
	Name        string
	ContentType string
	Content     []byte
}

// StageResult reports what happened to one staging batch: how many files were
// accepted and the user-facing feedback for anything rejected or truncated.
type StageResult struct {
	Accepted int      `json:"accepted"`
	Warnings []string `json:"warnings,omitempty"`
}

// Stage filters a batch by declared MIME-type prefix and appends what fits
// under the per-kind caps, preserving selection order. Files past a cap are
// dropped with a warning; files of neither kind are rejected with feedback.
func (d *Draft) Stage(batch []Incoming, limits Limits) StageResult {
	d.touch()

	var result StageResult

	for _, in := range batch {

		var kind MediaKind

		switch {
		case strings.HasPrefix(in.ContentType, "image/"):
			kind = MediaImage
		case strings.HasPrefix(in.ContentType, "video/"):
			kind = MediaVideo
		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%q is not an image or video and was rejected", in.Name))
			continue
		}

		if limits.MaxMediaSize > 0 && int64(len(in.Content)) > limits.MaxMediaSize {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%q exceeds the upload size limit", in.Name))
			continue
		}

		staged := StagedFile{
			ID:          uuid.New(),
			Kind:        kind,
			Name:        in.Name,
			ContentType: in.ContentType,
			Size:        int64(len(in.Content)),
			Content:     in.Content,
		}

		switch kind {
		case MediaImage:
			if len(d.Images) >= limits.MaxImages {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("image limit of %d reached, %q was dropped", limits.MaxImages, in.Name))
				continue
			}

			d.Images = append(d.Images, staged)
		case MediaVideo:
			if len(d.Videos) >= limits.MaxVideos {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("video limit of %d reached, %q was dropped", limits.MaxVideos, in.Name))
				continue
			}

			d.Videos = append(d.Videos, staged)
		}

		result.Accepted++
	}

	return result
}

// Media looks up a staged file by id for preview serving.
func (d *Draft) Media(mediaID uuid.UUID) (*StagedFile, bool) {

	for i := range d.Images {
		if d.Images[i].ID == mediaID {
			return &d.Images[i], true
		}
	}

	for i := range d.Videos {
		if d.Videos[i].ID == mediaID {
			return &d.Videos[i], true
		}
	}

	return nil, false
}

// Unstage removes a staged file and revokes its preview. Removing an unknown
// id is a no-op, so removal is idempotent.
func (d *Draft) Unstage(mediaID uuid.UUID) bool {

	for i := range d.Images {
		if d.Images[i].ID == mediaID {
			d.touch()
			d.Images = append(d.Images[:i], d.Images[i+1:]...)

			return true
		}
	}

	for i := range d.Videos {
		if d.Videos[i].ID == mediaID {
			d.touch()
			d.Videos = append(d.Videos[:i], d.Videos[i+1:]...)

			return true
		}
	}

	return false
}
