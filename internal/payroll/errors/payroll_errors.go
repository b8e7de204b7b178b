package payrollerrors

import (
	"net/http"

	"go-paye/internal/shared/apperror"
)

var (
	ErrInvalidConfig = apperror.New(
		apperror.CodeInvalidConfig,
		"invalid salary component configuration",
		http.StatusBadRequest,
	)
	ErrInvalidInput = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee input",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidContractType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid contract type, must be either 'Full Time' or 'Contract'",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"monetary values cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"invalid numeric value",
		http.StatusBadRequest,
	)
	ErrVoluntaryPensionCeiling = apperror.New(
		apperror.CodeInvalidInput,
		"voluntary pension cannot exceed 1/3 of monthly salary",
		http.StatusBadRequest,
	)
	ErrMissingColumns = apperror.New(
		apperror.CodeInvalidInput,
		"missing required columns",
		http.StatusBadRequest,
	)
	ErrEmptyFile = apperror.New(
		apperror.CodeInvalidInput,
		"uploaded file has no employee rows",
		http.StatusBadRequest,
	)
	ErrEmptyBatch = apperror.New(
		apperror.CodeInvalidInput,
		"batch must contain at least one employee",
		http.StatusBadRequest,
	)
)
