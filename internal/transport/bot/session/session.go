package session

import (
	"sync"

	"github.com/rs/xid"

	"price_tracker/internal/domain/service/catalog"
)

// Control is one user facing trigger with its own pending state, e.g. the
// track form or the delete button of one product.
type Control string

const (
	ControlList    Control = "list"
	ControlTrack   Control = "track"
	ControlKeyword Control = "keyword"
	ControlSearch  Control = "search"
	ControlItems   Control = "items"
)

// DeleteProductControl is the delete button of one product.
func DeleteProductControl(productID string) Control {
	return Control("del:" + productID)
}

// DeleteKeywordControl is the confirmation of one keyword deletion.
func DeleteKeywordControl(token string) Control {
	return Control("kwdel:" + token)
}

// Form is the state of one control. Input survives a failure so that the
// user can retry it.
type Form struct {
	Input   string
	Pending bool
	Failed  bool
}

// Session is the view state of one chat. All methods are safe for concurrent
// use; a released session rejects everything.
type Session struct {
	chatID  int64
	history *catalog.HistoryLoader

	mu         sync.Mutex
	released   bool
	forms      map[Control]*Form
	lastFailed Control
	keywords   map[string]string
	deletions  map[string]catalog.KeywordDeletion
	chartMsgID int
	listMsgID  int
}

func New(chatID int64, history *catalog.HistoryLoader) *Session {
	return &Session{
		chatID:    chatID,
		history:   history,
		forms:     map[Control]*Form{},
		keywords:  map[string]string{},
		deletions: map[string]catalog.KeywordDeletion{},
	}
}

func (s *Session) ChatID() int64 {
	return s.chatID
}

// History is the loader of this chat's chart.
func (s *Session) History() *catalog.HistoryLoader {
	return s.history
}

// Begin moves c to pending with input. It fails while c is already pending
// or after the session was released.
func (s *Session) Begin(c Control, input string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return false
	}

	form := s.form(c)
	if form.Pending {
		return false
	}

	form.Pending = true
	form.Input = input

	return true
}

// Succeed returns c to idle with the input cleared.
func (s *Session) Succeed(c Control) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form := s.form(c)
	form.Pending = false
	form.Failed = false
	form.Input = ""

	if s.lastFailed == c {
		s.lastFailed = ""
	}
}

// Fail returns c to idle and keeps its input for a retry.
func (s *Session) Fail(c Control) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form := s.form(c)
	form.Pending = false
	form.Failed = true
	s.lastFailed = c
}

func (s *Session) Form(c Control) Form {
	s.mu.Lock()
	defer s.mu.Unlock()

	if form, ok := s.forms[c]; ok {
		return *form
	}

	return Form{}
}

// LastFailed returns the most recently failed control that has not
// succeeded since.
func (s *Session) LastFailed() (Control, Form, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastFailed == "" {
		return "", Form{}, false
	}

	form := s.forms[s.lastFailed]
	if form == nil || !form.Failed {
		return "", Form{}, false
	}

	return s.lastFailed, *form, true
}

// RememberKeyword returns a token under which keyword can be looked up
// later. Callback data carries the token, never the text.
func (s *Session) RememberKeyword(keyword string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, known := range s.keywords {
		if known == keyword {
			return token
		}
	}

	token := xid.New().String()
	s.keywords[token] = keyword

	return token
}

func (s *Session) Keyword(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keyword, ok := s.keywords[token]

	return keyword, ok
}

// PlanDeletion keeps d until the user confirms or cancels it.
func (s *Session) PlanDeletion(token string, d catalog.KeywordDeletion) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletions[token] = d
}

// TakeDeletion removes and returns the plan stored under token.
func (s *Session) TakeDeletion(token string) (catalog.KeywordDeletion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.deletions[token]
	delete(s.deletions, token)

	return d, ok
}

// ChartMessage is the message the price chart is drawn into.
func (s *Session) ChartMessage() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chartMsgID, s.chartMsgID != 0
}

func (s *Session) SetChartMessage(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chartMsgID = id
}

// ListMessage is the last rendered catalog list.
func (s *Session) ListMessage() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listMsgID, s.listMsgID != 0
}

func (s *Session) SetListMessage(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listMsgID = id
}

// Release ends the session. Outstanding history loads become stale.
func (s *Session) Release() {
	s.mu.Lock()
	s.released = true
	s.mu.Unlock()

	s.history.Reset()
}

func (s *Session) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return !s.released
}

func (s *Session) form(c Control) *Form {
	form, ok := s.forms[c]
	if !ok {
		form = &Form{}
		s.forms[c] = form
	}

	return form
}
