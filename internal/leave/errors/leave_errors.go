package leaveerrors

import (
	"net/http"

	"go-leaveflow/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"unknown status filter",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrDuplicateRequest = apperror.New(
		apperror.CodeConflict,
		"an identical leave request already exists for this period",
		http.StatusConflict,
	)
	ErrNotDepartmentHead = apperror.New(
		apperror.CodeForbidden,
		"actor is not a department head",
		http.StatusForbidden,
	)
	ErrDepartmentScopeMismatch = apperror.New(
		apperror.CodeForbidden,
		"actor may only review requests from their own department",
		http.StatusForbidden,
	)
	ErrAdminRequired = apperror.New(
		apperror.CodeForbidden,
		"only an administrator may render the final decision",
		http.StatusForbidden,
	)
	ErrApprovalRequiresReview = apperror.New(
		apperror.CodeInvalidState,
		"final approval requires a prior department head recommendation",
		http.StatusConflict,
	)
	ErrAlreadyReviewed = apperror.New(
		apperror.CodeConflict,
		"leave request was already reviewed",
		http.StatusConflict,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"leave request was already decided",
		http.StatusConflict,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be approve or reject",
		http.StatusBadRequest,
	)
	ErrCapExceeded = apperror.New(
		apperror.CodePolicyViolation,
		"request exceeds the annual leave allowance",
		http.StatusUnprocessableEntity,
	)
)
