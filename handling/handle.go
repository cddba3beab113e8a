package handling

import (
	"errors"
	"net/http"

	"digistore_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleError writes the response for err. Expected failures map to their
// status codes; anything else is logged and hidden behind a generic 500.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) {
	var (
		validationErr  *lib.ValidationError
		ruleErr        *lib.RuleError
		conflictErr    *lib.ConflictError
		notFoundErr    *lib.NotFoundError
		unavailableErr *lib.UnavailableError
	)

	switch {
	case errors.As(err, &validationErr):
		gecho.BadRequest(w,
			gecho.WithMessage("Validation failed"),
			gecho.WithData(validationErr.Errors),
			gecho.Send(),
		)
	case errors.As(err, &ruleErr) && ruleErr.Data != nil:
		gecho.BadRequest(w, gecho.WithMessage(ruleErr.Message), gecho.WithData(ruleErr.Data), gecho.Send())
	case errors.As(err, &ruleErr):
		gecho.BadRequest(w, gecho.WithMessage(ruleErr.Message), gecho.Send())
	case errors.Is(err, lib.ErrInvalidBody):
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
	case errors.As(err, &conflictErr):
		gecho.BadRequest(w, gecho.WithMessage(conflictErr.Message), gecho.Send())
	case errors.Is(err, lib.ErrConflict):
		gecho.BadRequest(w, gecho.WithMessage("Data already exists"), gecho.Send())
	case errors.As(err, &notFoundErr):
		gecho.NotFound(w, gecho.WithMessage(notFoundErr.Error()), gecho.Send())
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.WithMessage("Not found"), gecho.Send())
	case errors.Is(err, lib.ErrInvalidCredentials):
		gecho.Unauthorized(w, gecho.WithMessage("Username atau password salah"), gecho.Send())
	case errors.Is(err, lib.ErrExpiredToken):
		gecho.Unauthorized(w, gecho.WithMessage("Token expired"), gecho.Send())
	case errors.Is(err, lib.ErrInvalidToken):
		gecho.Unauthorized(w, gecho.WithMessage("Invalid token"), gecho.Send())
	case errors.Is(err, lib.ErrForbidden):
		gecho.Forbidden(w, gecho.WithMessage("Access denied"), gecho.Send())
	case errors.As(err, &unavailableErr):
		gecho.ServiceUnavailable(w, gecho.WithMessage(unavailableErr.Message), gecho.Send())
	default:
		logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))
		gecho.InternalServerError(w, gecho.WithMessage(msg), gecho.Send())
	}
}
