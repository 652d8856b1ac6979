package handler

import (
	"context"
	"strconv"
	"strings"

	"price_tracker/internal/domain/value"
	"price_tracker/internal/transport/bot/session"
	"price_tracker/internal/transport/bot/view"
)

func (h *Handler) Start(ctx context.Context, in Incoming) error {
	_, err := h.replier.Send(ctx, in.ChatID, view.Message{Text: view.StartMessage})
	return err
}

func (h *Handler) List(ctx context.Context, in Incoming) error {
	return h.run(withChat(ctx, in.ChatID), h.sessions.Get(in.ChatID), session.ControlList, "", nil)
}

func (h *Handler) Track(ctx context.Context, in Incoming) error {
	arg := argument(in.Text)
	if arg == "" {
		return h.sendText(ctx, in.ChatID, view.TrackUsage)
	}

	return h.run(withChat(ctx, in.ChatID), h.sessions.Get(in.ChatID), session.ControlTrack, arg, nil)
}

func (h *Handler) Keyword(ctx context.Context, in Incoming) error {
	arg := argument(in.Text)
	if arg == "" {
		return h.sendText(ctx, in.ChatID, view.KeywordUsage)
	}

	return h.run(withChat(ctx, in.ChatID), h.sessions.Get(in.ChatID), session.ControlKeyword, arg, nil)
}

func (h *Handler) Search(ctx context.Context, in Incoming) error {
	arg := argument(in.Text)
	if arg == "" {
		return h.sendText(ctx, in.ChatID, view.SearchUsage)
	}

	return h.run(withChat(ctx, in.ChatID), h.sessions.Get(in.ChatID), session.ControlSearch, arg, nil)
}

func (h *Handler) Items(ctx context.Context, in Incoming) error {
	arg := argument(in.Text)
	if arg == "" {
		return h.sendText(ctx, in.ChatID, view.ItemsUsage)
	}

	return h.run(withChat(ctx, in.ChatID), h.sessions.Get(in.ChatID), session.ControlItems, value.NormalizeKeyword(arg), nil)
}

// Retry repeats the last failed control with its kept input.
func (h *Handler) Retry(ctx context.Context, in Incoming) error {
	s := h.sessions.Get(in.ChatID)

	control, form, ok := s.LastFailed()
	if !ok {
		return h.sendText(ctx, in.ChatID, view.NothingToRetry)
	}

	return h.run(withChat(ctx, in.ChatID), s, control, form.Input, nil)
}

// Text treats a pasted item link as /track.
func (h *Handler) Text(ctx context.Context, in Incoming) error {
	if !value.ContainsItemURL(in.Text) {
		return h.sendText(ctx, in.ChatID, view.NotAnItemURL)
	}

	return h.run(withChat(ctx, in.ChatID), h.sessions.Get(in.ChatID), session.ControlTrack, in.Text, nil)
}

// run executes control with input on behalf of s. The control stays pending
// until the call returns, so a second trigger meanwhile is refused. p is the
// pressed button, nil for commands.
func (h *Handler) run(ctx context.Context, s *session.Session, control session.Control, input string, p *Press) error {
	if !s.Begin(control, input) {
		return h.notice(ctx, s.ChatID(), p, view.Busy)
	}

	switch {
	case control == session.ControlList:
		snap, err := h.catalog.LoadAll(ctx)
		if ok, replyErr := h.finish(ctx, s, p, control, err); !ok {
			return replyErr
		}

		h.answer(ctx, p)

		return h.showList(ctx, s, snap)

	case control == session.ControlTrack:
		if ok, err := h.finish(ctx, s, p, control, h.catalog.Track(ctx, input)); !ok {
			return err
		}

		h.answer(ctx, p)

		if err := h.sendText(ctx, s.ChatID(), "✅ Item tracked."); err != nil {
			return err
		}

		return h.showList(ctx, s, h.catalog.Snapshot())

	case control == session.ControlKeyword:
		ingestion, err := h.catalog.TrackKeyword(ctx, input)
		if ok, replyErr := h.finish(ctx, s, p, control, err); !ok {
			return replyErr
		}

		h.answer(ctx, p)

		if _, err := h.replier.Send(ctx, s.ChatID(), view.Tracked(ingestion)); err != nil {
			return err
		}

		return h.showList(ctx, s, h.catalog.Snapshot())

	case control == session.ControlSearch:
		results, err := h.catalog.SearchNow(ctx, input)
		if ok, replyErr := h.finish(ctx, s, p, control, err); !ok {
			return replyErr
		}

		h.answer(ctx, p)

		keyword := value.NormalizeKeyword(input)
		_, err = h.replier.Send(ctx, s.ChatID(), view.SearchResults(keyword, results, s.RememberKeyword(keyword)))

		return err

	case control == session.ControlItems:
		items, err := h.catalog.KeywordItems(ctx, input)
		if ok, replyErr := h.finish(ctx, s, p, control, err); !ok {
			return replyErr
		}

		h.answer(ctx, p)

		_, err = h.replier.Send(ctx, s.ChatID(), view.KeywordItems(input, items))

		return err

	case strings.HasPrefix(string(control), view.PrefixDeleteProduct):
		return h.deleteProduct(ctx, s, control, input, p)

	case strings.HasPrefix(string(control), view.PrefixDeleteKeyword):
		return h.deleteKeyword(ctx, s, control, input, p)

	default:
		s.Succeed(control)
		return h.notice(ctx, s.ChatID(), p, view.NothingToRetry)
	}
}

func (h *Handler) deleteProduct(ctx context.Context, s *session.Session, control session.Control, input string, p *Press) error {
	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		s.Succeed(control)
		return h.notice(ctx, s.ChatID(), p, view.Expired)
	}

	if ok, err := h.finish(ctx, s, p, control, h.catalog.DeleteProduct(ctx, id)); !ok {
		return err
	}

	h.answer(ctx, p)

	if err := h.sendText(ctx, s.ChatID(), "🗑 Item deleted."); err != nil {
		return err
	}

	return h.showList(ctx, s, h.catalog.Snapshot())
}

// deleteKeyword executes the confirmed plan stored under token. A failed
// attempt puts the plan back so that it can be retried.
func (h *Handler) deleteKeyword(ctx context.Context, s *session.Session, control session.Control, token string, p *Press) error {
	plan, ok := s.TakeDeletion(token)
	if !ok {
		s.Succeed(control)
		return h.notice(ctx, s.ChatID(), p, view.Expired)
	}

	err := h.catalog.DeleteKeyword(ctx, plan.Confirm())
	if err != nil && !mutationDone(err) {
		s.PlanDeletion(token, plan)
	}

	if ok, err := h.finish(ctx, s, p, control, err); !ok {
		return err
	}

	h.answer(ctx, p)

	if err := h.sendText(ctx, s.ChatID(), "🗑 Keyword "+plan.Keyword+" deleted."); err != nil {
		return err
	}

	return h.showList(ctx, s, h.catalog.Snapshot())
}

// argument is the text after the command word.
func argument(text string) string {
	_, arg, _ := strings.Cut(strings.TrimSpace(text), " ")
	return strings.TrimSpace(arg)
}
