// internal/app/features/notes/handler.go
package notes

import (
	uierrors "github.com/dalemusser/advisehub/internal/app/features/errors"
	notestore "github.com/dalemusser/advisehub/internal/app/store/notes"
	teamstore "github.com/dalemusser/advisehub/internal/app/store/teams"
	userstore "github.com/dalemusser/advisehub/internal/app/store/users"
	"github.com/dalemusser/advisehub/internal/app/system/media"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxAttachmentBytes caps a single uploaded file.
const maxAttachmentBytes = 25 << 20 // 25 MiB

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Users  *userstore.Store
	Teams  *teamstore.Store
	Notes  *notestore.Store
	Media  media.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger, mediaStore media.Store) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: uierrors.NewErrorLogger(logger),
		Users:  userstore.New(db),
		Teams:  teamstore.New(db),
		Notes:  notestore.New(db),
		Media:  mediaStore,
	}
}
