// internal/app/features/notes/upload.go
package notes

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/dalemusser/advisehub/internal/app/system/media"
	"github.com/dalemusser/advisehub/internal/domain/models"
)

// storeAttachment writes one uploaded file into the media store and
// returns the attachment metadata to persist on the note.
func (h *Handler) storeAttachment(ctx context.Context, fh *multipart.FileHeader) (models.Attachment, error) {
	if fh.Size > maxAttachmentBytes {
		return models.Attachment{}, fmt.Errorf("file %q exceeds the size limit", fh.Filename)
	}

	f, err := fh.Open()
	if err != nil {
		return models.Attachment{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	objectPath := media.ObjectPath("notes", fh.Filename)

	if err := h.Media.Put(ctx, objectPath, f, media.PutOptions{ContentType: contentType}); err != nil {
		return models.Attachment{}, err
	}

	return models.Attachment{
		Path:        objectPath,
		FileName:    fh.Filename,
		Size:        fh.Size,
		ContentType: contentType,
	}, nil
}
