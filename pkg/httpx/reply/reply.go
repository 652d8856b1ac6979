package reply

import (
	"context"
	"errors"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"price_tracker/pkg/contextx"
	"price_tracker/pkg/errcodes"
	"price_tracker/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
	// Detail mirrors Message for clients written against FastAPI backends.
	Detail string `json:"detail"`
}

func (e *errorResponse) WithDefaultCode(code failure.ErrorCode) {
	if e.Code == "" {
		e.Code = code.String()
	}
}

// codedError is implemented by domain errors.
type codedError interface {
	error
	ErrorCode() failure.ErrorCode
}

//nolint:gochecknoglobals
var codeStatuses = map[failure.ErrorCode]int{
	errcodes.ValidationError:  http.StatusBadRequest,
	errcodes.InvalidURL:       http.StatusBadRequest,
	errcodes.InvalidKeyword:   http.StatusBadRequest,
	errcodes.InvalidProductID: http.StatusBadRequest,
	errcodes.NotFound:         http.StatusNotFound,
	errcodes.ScrapeFailed:     http.StatusBadGateway,
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func Created(w http.ResponseWriter) {
	w.WriteHeader(http.StatusCreated)
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, err error) {
	logger(ctx).Error("error", logx.Error(err))

	var coded codedError
	if errors.As(err, &coded) {
		if status, ok := codeStatuses[coded.ErrorCode()]; ok {
			writeCoded(ctx, w, status, coded)
			return
		}
	}

	response := errorResponse{
		Code:      failure.Code(err).String(),
		Message:   failure.Description(err),
		SupportID: supportID(ctx),
	}
	response.Detail = response.Message

	switch {
	case failure.IsInvalidArgumentError(err):
		response.WithDefaultCode(errcodes.ValidationError)
		JSON(ctx, w, http.StatusBadRequest, response)
	case failure.IsNotFoundError(err):
		response.WithDefaultCode(errcodes.NotFound)
		JSON(ctx, w, http.StatusNotFound, response)
	case failure.IsConflictError(err):
		JSON(ctx, w, http.StatusConflict, response)
	case failure.IsUnprocessableEntityError(err):
		JSON(ctx, w, http.StatusUnprocessableEntity, response)
	default:
		response.WithDefaultCode(errcodes.InternalServerError)
		JSON(ctx, w, http.StatusInternalServerError, response)
	}
}

func writeCoded(ctx context.Context, w http.ResponseWriter, status int, coded codedError) {
	message := coded.Error()

	JSON(ctx, w, status, errorResponse{
		Code:      coded.ErrorCode().String(),
		Message:   message,
		SupportID: supportID(ctx),
		Detail:    message,
	})
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
