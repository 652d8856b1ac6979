package handler

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"price_tracker/internal/domain"
	"price_tracker/internal/domain/entity"
	"price_tracker/internal/transport/bot/session"
	"price_tracker/internal/transport/bot/view"
	"price_tracker/pkg/errcodes"
	"price_tracker/pkg/logx"
)

const noLongerTracked = "This item is no longer tracked."

// Press dispatches an inline button.
func (h *Handler) Press(ctx context.Context, p Press) error {
	ctx = withChat(ctx, p.ChatID)
	s := h.sessions.Get(p.ChatID)

	switch {
	case p.Data == view.RefreshData:
		return h.refresh(ctx, s, p)

	case strings.HasPrefix(p.Data, view.PrefixHistory):
		return h.history(ctx, s, p)

	case strings.HasPrefix(p.Data, view.PrefixDeleteProduct):
		id, ok := view.ParseID(p.Data, view.PrefixDeleteProduct)
		if !ok {
			return h.alert(ctx, p, view.Expired)
		}

		idStr := strconv.FormatInt(id, 10)

		return h.run(ctx, s, session.DeleteProductControl(idStr), idStr, &p)

	case strings.HasPrefix(p.Data, view.PrefixKeywordItems):
		keyword, ok := s.Keyword(strings.TrimPrefix(p.Data, view.PrefixKeywordItems))
		if !ok {
			return h.alert(ctx, p, view.Expired)
		}

		return h.run(ctx, s, session.ControlItems, keyword, &p)

	case strings.HasPrefix(p.Data, view.PrefixTrackKeyword):
		keyword, ok := s.Keyword(strings.TrimPrefix(p.Data, view.PrefixTrackKeyword))
		if !ok {
			return h.alert(ctx, p, view.Expired)
		}

		return h.run(ctx, s, session.ControlKeyword, keyword, &p)

	case strings.HasPrefix(p.Data, view.PrefixDeleteKeyword):
		return h.planKeywordDeletion(ctx, s, p, strings.TrimPrefix(p.Data, view.PrefixDeleteKeyword))

	case strings.HasPrefix(p.Data, view.PrefixConfirmDelete):
		token := strings.TrimPrefix(p.Data, view.PrefixConfirmDelete)

		return h.run(ctx, s, session.DeleteKeywordControl(token), token, &p)

	case strings.HasPrefix(p.Data, view.PrefixCancelDelete):
		s.TakeDeletion(strings.TrimPrefix(p.Data, view.PrefixCancelDelete))

		return h.ack(ctx, p, func() error {
			return h.replier.Edit(ctx, p.ChatID, p.MessageID, view.Text(view.Cancelled))
		})

	case strings.HasPrefix(p.Data, view.PrefixRetry):
		control := session.Control(strings.TrimPrefix(p.Data, view.PrefixRetry))

		form := s.Form(control)
		if !form.Failed {
			return h.alert(ctx, p, view.NothingToRetry)
		}

		return h.run(ctx, s, control, form.Input, &p)

	default:
		logger(ctx).Warn("unknown callback data", slog.String("data", p.Data))
		return h.alert(ctx, p, view.Expired)
	}
}

// refresh reloads the catalog into the pressed message.
func (h *Handler) refresh(ctx context.Context, s *session.Session, p Press) error {
	if !s.Begin(session.ControlList, "") {
		return h.alert(ctx, p, view.Busy)
	}

	snap, err := h.catalog.LoadAll(ctx)
	if err != nil {
		s.Fail(session.ControlList)
		return h.alert(ctx, p, view.Alert(err))
	}

	s.Succeed(session.ControlList)

	if err := h.replier.Edit(ctx, p.ChatID, p.MessageID, view.Catalog(snap, s.RememberKeyword)); err != nil {
		return err
	}

	s.SetListMessage(p.MessageID)

	return h.replier.Answer(ctx, p.QueryID, "", false)
}

// history draws the chart of the pressed product into the chat's chart
// message. Only the latest press is drawn.
func (h *Handler) history(ctx context.Context, s *session.Session, p Press) error {
	id, ok := view.ParseID(p.Data, view.PrefixHistory)
	if !ok {
		return h.alert(ctx, p, view.Expired)
	}

	product, ok := h.catalog.Snapshot().Product(id)
	if !ok {
		return h.alert(ctx, p, noLongerTracked)
	}

	sel := s.History().Select(id)

	err := s.History().Load(ctx, sel, func(history entity.History) error {
		return h.drawChart(ctx, s, view.History(product, history))
	})

	switch {
	case err == nil:
		h.answer(ctx, &p)
		return nil
	case domain.HasCode(err, errcodes.StaleResponse):
		logger(ctx).Info("history response superseded", slog.Int64(logx.FieldProductID, id))
		h.answer(ctx, &p)
		return nil
	case !domain.IsAppError(err):
		return err
	}

	if answerErr := h.replier.Answer(ctx, p.QueryID, view.Alert(err), true); answerErr == nil {
		return nil
	}

	_, err = h.replier.Send(ctx, s.ChatID(), view.HistoryFailure(err, id))

	return err
}

func (h *Handler) drawChart(ctx context.Context, s *session.Session, msg view.Message) error {
	if id, ok := s.ChartMessage(); ok {
		err := h.replier.Edit(ctx, s.ChatID(), id, msg)
		if err == nil {
			return nil
		}

		logger(ctx).Warn("editing chart message", logx.Error(err))
	}

	id, err := h.replier.Send(ctx, s.ChatID(), msg)
	if err != nil {
		return err
	}

	s.SetChartMessage(id)

	return nil
}

// planKeywordDeletion asks for confirmation before a cascading delete.
func (h *Handler) planKeywordDeletion(ctx context.Context, s *session.Session, p Press, token string) error {
	keyword, ok := s.Keyword(token)
	if !ok {
		return h.alert(ctx, p, view.Expired)
	}

	plan, err := h.catalog.PlanKeywordDeletion(ctx, keyword)
	if err != nil {
		return h.alert(ctx, p, view.Alert(err))
	}

	s.PlanDeletion(token, plan)

	return h.ack(ctx, p, func() error {
		_, err := h.replier.Send(ctx, p.ChatID, view.ConfirmKeywordDeletion(plan, token))
		return err
	})
}

// ack answers the query, then runs the follow up.
func (h *Handler) ack(ctx context.Context, p Press, next func() error) error {
	if err := h.replier.Answer(ctx, p.QueryID, "", false); err != nil {
		return err
	}

	return next()
}

func (h *Handler) alert(ctx context.Context, p Press, text string) error {
	return h.replier.Answer(ctx, p.QueryID, text, true)
}
