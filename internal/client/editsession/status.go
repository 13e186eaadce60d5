package editsession

import (
	"errors"

	"github.com/dmitrijs2005/myhealth/internal/common"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusLoading    Status = "loading"
	StatusReady      Status = "ready"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

const (
	eventLoad         = "load"
	eventHydrate      = "hydrate"
	eventLoaded       = "loaded"
	eventLoadFailed   = "load_failed"
	eventSubmit       = "submit"
	eventSubmitted    = "submitted"
	eventSubmitFailed = "submit_failed"
)

var (
	ErrSubmitInProgress = errors.New("submit already in progress")
	ErrNotRetryable     = errors.New("record failed to load; reopen the page to retry")
	ErrNotReady         = errors.New("record is not ready for editing")
	ErrEmptyKey         = common.ErrEmptyKey
)
