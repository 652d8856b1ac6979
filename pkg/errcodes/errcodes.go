package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidURL          failure.ErrorCode = "InvalidURL"
	InvalidKeyword      failure.ErrorCode = "InvalidKeyword"
	InvalidProductID    failure.ErrorCode = "InvalidProductID"
	ScrapeFailed        failure.ErrorCode = "ScrapeFailed"

	// Client side taxonomy.
	FetchFailed          failure.ErrorCode = "FetchFailed"          // read failed, snapshot left stale
	TrackFailed          failure.ErrorCode = "TrackFailed"          // create failed, input kept
	DeleteFailed         failure.ErrorCode = "DeleteFailed"         // delete failed, view unchanged
	MalformedEntity      failure.ErrorCode = "MalformedEntity"      // list item cannot be classified
	StaleResponse        failure.ErrorCode = "StaleResponse"        // superseded by a newer request
	DeletionNotConfirmed failure.ErrorCode = "DeletionNotConfirmed" // cascading delete without confirmation
)
