package handler

import (
	"context"
	"log/slog"

	"github.com/rs/xid"

	"price_tracker/internal/domain"
	"price_tracker/internal/domain/entity"
	"price_tracker/internal/domain/service/catalog"
	"price_tracker/internal/transport/bot/session"
	"price_tracker/internal/transport/bot/view"
	"price_tracker/pkg/contextx"
	"price_tracker/pkg/errcodes"
	"price_tracker/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Catalog is the synchronized view of the tracker.
type Catalog interface {
	Snapshot() catalog.Snapshot
	LoadAll(ctx context.Context) (catalog.Snapshot, error)
	Track(ctx context.Context, rawURL string) error
	TrackKeyword(ctx context.Context, text string) (entity.KeywordIngestion, error)
	SearchNow(ctx context.Context, text string) ([]entity.SearchResult, error)
	KeywordItems(ctx context.Context, keyword string) ([]entity.IngestedItem, error)
	DeleteProduct(ctx context.Context, id int64) error
	PlanKeywordDeletion(ctx context.Context, keyword string) (catalog.KeywordDeletion, error)
	DeleteKeyword(ctx context.Context, d catalog.KeywordDeletion) error
}

// Replier talks back to a chat.
type Replier interface {
	Send(ctx context.Context, chatID int64, msg view.Message) (int, error)
	Edit(ctx context.Context, chatID int64, messageID int, msg view.Message) error
	Answer(ctx context.Context, queryID, text string, alert bool) error
}

// Incoming is a text message.
type Incoming struct {
	ChatID int64
	Text   string
}

// Press is a click on an inline button.
type Press struct {
	QueryID   string
	ChatID    int64
	MessageID int
	Data      string
}

type Handler struct {
	catalog  Catalog
	sessions *session.Store
	replier  Replier
}

func New(c Catalog, sessions *session.Store, replier Replier) *Handler {
	return &Handler{
		catalog:  c,
		sessions: sessions,
		replier:  replier,
	}
}

// finish settles control after a mutation. A mutation that went through but
// whose list refresh failed counts as a success with a stale list. Failures
// are reported to the pressed button when there is one.
func (h *Handler) finish(ctx context.Context, s *session.Session, p *Press, control session.Control, err error) (bool, error) {
	switch {
	case err == nil:
		s.Succeed(control)
		return true, nil
	case mutating(control) && mutationDone(err):
		s.Succeed(control)
		h.answer(ctx, p)
		_, sendErr := h.replier.Send(ctx, s.ChatID(), view.StaleList(err))
		return false, sendErr
	default:
		s.Fail(control)
		logger(ctx).Warn("control failed", slog.String(logx.FieldControl, string(control)), logx.Error(err))
		return false, h.fail(ctx, s, p, control, err)
	}
}

func mutating(control session.Control) bool {
	switch control {
	case session.ControlList, session.ControlSearch, session.ControlItems:
		return false
	default:
		return true
	}
}

// mutationDone reports whether err only says the list refresh failed.
func mutationDone(err error) bool {
	return domain.HasCode(err, errcodes.FetchFailed)
}

// fail shows err as an alert on the pressed button, or as a reply with a
// retry button. An alert that can no longer be shown falls back to a reply.
func (h *Handler) fail(ctx context.Context, s *session.Session, p *Press, control session.Control, err error) error {
	if p != nil {
		answerErr := h.replier.Answer(ctx, p.QueryID, view.Alert(err), true)
		if answerErr == nil {
			return nil
		}

		logger(ctx).Warn("answering callback query", logx.Error(answerErr))
	}

	_, sendErr := h.replier.Send(ctx, s.ChatID(), view.Failure(err, string(control)))

	return sendErr
}

// notice tells text to the pressed button or to the chat.
func (h *Handler) notice(ctx context.Context, chatID int64, p *Press, text string) error {
	if p != nil {
		return h.replier.Answer(ctx, p.QueryID, text, true)
	}

	return h.sendText(ctx, chatID, text)
}

// answer stops the loading indicator of the pressed button.
func (h *Handler) answer(ctx context.Context, p *Press) {
	if p == nil {
		return
	}

	if err := h.replier.Answer(ctx, p.QueryID, "", false); err != nil {
		logger(ctx).Warn("answering callback query", logx.Error(err))
	}
}

func (h *Handler) sendText(ctx context.Context, chatID int64, text string) error {
	_, err := h.replier.Send(ctx, chatID, view.Text(text))
	return err
}

// showList sends the current catalog as a new message and remembers it.
func (h *Handler) showList(ctx context.Context, s *session.Session, snap catalog.Snapshot) error {
	id, err := h.replier.Send(ctx, s.ChatID(), view.Catalog(snap, s.RememberKeyword))
	if err != nil {
		return err
	}

	s.SetListMessage(id)

	return nil
}

// withChat tags ctx and its logger with the chat and a fresh trace id.
func withChat(ctx context.Context, chatID int64) context.Context {
	traceID := xid.New().String()

	ctx = contextx.WithChatID(ctx, contextx.ChatID(chatID))
	ctx = contextx.WithTraceID(ctx, contextx.TraceID(traceID))

	return contextx.WithLogger(ctx, logger(ctx).With(
		slog.Int64(logx.FieldChatID, chatID),
		slog.String(logx.FieldTraceID, traceID),
	))
}
