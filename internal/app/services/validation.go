package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/abimath/internal/app/models"
	"github.com/yigit/abimath/internal/app/models/dto"
	"github.com/yigit/abimath/internal/pkg/apperrors"
	"github.com/yigit/abimath/internal/pkg/logger"
)

// gridOrder fixes the order in which supplied grids are checked
var gridOrder = []string{"addresults", "subresults", "mulresults", "divresults"}

// validateGrids rejects any supplied grid that is not 10×10
func validateGrids(update dto.GridUpdate) error {
	named := update.Named()
	for _, name := range gridOrder {
		grid, ok := named[name]
		if !ok {
			continue
		}
		switch err := grid.Validate(); {
		case errors.Is(err, models.ErrGridRows):
			return apperrors.NewBadRequestError(fmt.Sprintf("There must be %d rows in %s.", models.GridSize, name))
		case errors.Is(err, models.ErrGridColumns):
			return apperrors.NewBadRequestError(fmt.Sprintf("Each row in %s must have %d columns.", name, models.GridSize))
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// finish maps the outcome of a unit of work. Errors that already carry a
// client message pass through; anything else was raised by the store after
// the transaction was rolled back and becomes a generic persistence error.
func finish(err error, operation, message string) error {
	if err == nil {
		return nil
	}
	var ce *apperrors.CustomError
	if errors.As(err, &ce) {
		return err
	}
	logger.Error().Err(err).Str("operation", operation).Msg("Transaction rolled back")
	return apperrors.NewPersistenceError(message, err)
}

const msgReadFailed = "Unexpected error accessing the database."
