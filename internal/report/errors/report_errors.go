package reporterrors

import (
	"net/http"

	"go-leaveflow/internal/shared/apperror"
)

var ErrInvalidGroupBy = apperror.New(
	apperror.CodeInvalidInput,
	"group_by must be one of year, month, department, employee",
	http.StatusBadRequest,
)
