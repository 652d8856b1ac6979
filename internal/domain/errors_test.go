package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"price_tracker/internal/domain"
	"price_tracker/pkg/errcodes"
)

func TestAppError(t *testing.T) {
	rq := require.New(t)

	cause := errors.New("connection refused")
	err := fmt.Errorf("syncer.LoadAll: %w", domain.WrapError(cause, errcodes.FetchFailed, "could not load the list"))

	rq.True(domain.IsAppError(err))
	rq.ErrorIs(err, cause)
	rq.True(domain.HasCode(err, errcodes.FetchFailed))
	rq.False(domain.HasCode(err, errcodes.TrackFailed))
	rq.Equal("could not load the list", domain.Message(err, "fallback"))
	rq.Contains(err.Error(), "connection refused")

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.FetchFailed, code)
}

func TestAppErrorPlain(t *testing.T) {
	rq := require.New(t)

	err := errors.New("boom")

	rq.False(domain.IsAppError(err))
	rq.False(domain.HasCode(err, errcodes.FetchFailed))
	rq.Equal("fallback", domain.Message(err, "fallback"))

	_, ok := domain.GetCode(err)
	rq.False(ok)

	rq.Equal("no url", domain.NewError(errcodes.MalformedEntity, "no url").Error())
}
