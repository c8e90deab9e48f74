package delivery

import "errors"

var (
	ErrMissingRequiredFields     = errors.New("missing required fields")
	ErrInvalidDeliveryID         = errors.New("invalid delivery id")
	ErrInvalidDistance           = errors.New("distance must be a non-negative number")
	ErrInvalidTechnicalCondition = errors.New("technical condition must be one of: good, bad")
	ErrInvalidTransportNumber    = errors.New("transport number must not be empty")
	ErrNoFieldsToUpdate          = errors.New("no fields to update")
	ErrTransportNumberTooLong    = errors.New("transport number must be at most 50 characters")
	ErrAddressTooLong            = errors.New("address must be at most 255 characters")
	ErrMediaRefTooLong           = errors.New("media file reference must be at most 255 characters")
	ErrConstraintViolation       = errors.New("value violates a storage constraint")

	ErrDeliveryNotFound  = errors.New("delivery not found")
	ErrReferenceNotFound = errors.New("referenced object does not exist")
	ErrStatusNotFound    = errors.New("delivery status not found")

	// ErrCompletedStatusNotConfigured - отклонённая операция, а не сбой сервера.
	ErrCompletedStatusNotConfigured = errors.New(`delivery status with code "completed" is not configured`)
)

var validationErrors = []error{
	ErrMissingRequiredFields,
	ErrInvalidDistance,
	ErrInvalidTechnicalCondition,
	ErrInvalidTransportNumber,
	ErrNoFieldsToUpdate,
	ErrTransportNumberTooLong,
	ErrAddressTooLong,
	ErrMediaRefTooLong,
	ErrConstraintViolation,
	ErrReferenceNotFound,
}

// ValidationError возвращает ошибку отклонённого ввода из цепочки err или nil.
func ValidationError(err error) error {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}
