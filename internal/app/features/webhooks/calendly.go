// internal/app/features/webhooks/calendly.go
package webhooks

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	meetingstore "github.com/dalemusser/advisehub/internal/app/store/meetings"
	userstore "github.com/dalemusser/advisehub/internal/app/store/users"
	"github.com/dalemusser/advisehub/internal/app/system/timeouts"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// signatureHeader carries the hex-encoded HMAC-SHA256 of the raw body.
const signatureHeader = "Calendly-Webhook-Signature"

// maxBodyBytes caps a webhook payload.
const maxBodyBytes = 1 << 20 // 1 MiB

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Users    *userstore.Store
	Meetings *meetingstore.Store

	// Secret signs incoming payloads. When empty, signature
	// verification is skipped (local development).
	Secret string
}

func NewHandler(db *mongo.Database, logger *zap.Logger, secret string) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Users:    userstore.New(db),
		Meetings: meetingstore.New(db),
		Secret:   secret,
	}
}

// calendlyEvent is the subset of the Calendly webhook payload we use.
type calendlyEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Email          string `json:"email"`
		Name           string `json:"name"`
		ScheduledEvent struct {
			URI       string    `json:"uri"`
			StartTime time.Time `json:"start_time"`
			EndTime   time.Time `json:"end_time"`
		} `json:"scheduled_event"`
		Cancellation struct {
			Reason string `json:"reason"`
		} `json:"cancellation"`
	} `json:"payload"`
}

// HandleCalendly handles POST /webhooks/calendly.
//
// Unknown event types and unmatchable invitees are acknowledged with
// 200 so the sender does not retry them forever; only transport-level
// problems (bad method, bad signature, bad JSON) and store failures
// get error statuses.
func (h *Handler) HandleCalendly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "read failed", http.StatusBadRequest)
		return
	}

	if h.Secret != "" && !h.verifySignature(body, r.Header.Get(signatureHeader)) {
		h.Log.Warn("calendly webhook: bad signature")
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var ev calendlyEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		h.Log.Warn("calendly webhook: malformed payload", zap.Error(err))
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "calendly webhook")
	defer cancel()

	switch ev.Event {
	case "invitee.created":
		err = h.handleInviteeCreated(ctx, ev)
	case "invitee.canceled":
		err = h.handleInviteeCanceled(ctx, ev)
	default:
		h.Log.Info("calendly webhook: ignoring event", zap.String("event", ev.Event))
	}
	if err != nil {
		h.Log.Error("calendly webhook: processing failed",
			zap.String("event", ev.Event),
			zap.Error(err))
		http.Error(w, "processing failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.Secret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(signature))
}

// handleInviteeCreated records an externally booked meeting. Invitees
// whose email matches no student are logged and dropped.
func (h *Handler) handleInviteeCreated(ctx context.Context, ev calendlyEvent) error {
	student, err := h.Users.GetByEmail(ctx, ev.Payload.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			h.Log.Warn("calendly webhook: no student for invitee",
				zap.String("email", ev.Payload.Email))
			return nil
		}
		return err
	}

	start := ev.Payload.ScheduledEvent.StartTime
	end := ev.Payload.ScheduledEvent.EndTime

	m := models.Meeting{
		StudentID:       student.ID,
		StudentName:     student.FullName,
		ScheduledDate:   start,
		StartTime:       &start,
		EndTime:         &end,
		Status:          models.StatusScheduled,
		Source:          models.SourceCalendly,
		CalendlyEventID: ev.Payload.ScheduledEvent.URI,
	}
	if student.AdvisorID != nil {
		m.AdvisorID = *student.AdvisorID
		if adv, err := h.Users.GetByID(ctx, *student.AdvisorID); err == nil {
			m.AdvisorName = adv.FullName
		}
	}

	created, err := h.Meetings.Create(ctx, m)
	if err != nil {
		return err
	}

	h.Log.Info("calendly webhook: meeting created",
		zap.String("meeting_id", created.ID.Hex()),
		zap.String("student_id", student.ID.Hex()))
	return nil
}

// handleInviteeCanceled cancels the meeting created for the booking.
// An unknown event id is acknowledged without error.
func (h *Handler) handleInviteeCanceled(ctx context.Context, ev calendlyEvent) error {
	m, err := h.Meetings.ByCalendlyEvent(ctx, ev.Payload.ScheduledEvent.URI)
	if err != nil {
		if errors.Is(err, meetingstore.ErrNotFound) {
			h.Log.Warn("calendly webhook: cancel for unknown event",
				zap.String("event_uri", ev.Payload.ScheduledEvent.URI))
			return nil
		}
		return err
	}

	if err := h.Meetings.Cancel(ctx, m.ID, ev.Payload.Cancellation.Reason); err != nil {
		return err
	}

	h.Log.Info("calendly webhook: meeting cancelled",
		zap.String("meeting_id", m.ID.Hex()))
	return nil
}
