package admin

import (
	"errors"
	"net/http"

	"digistore_server/api/middleware"
	"digistore_server/handling"
	"digistore_server/lib"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
)

func (ar *AdminRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.LoginRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		handling.HandleError(err, "Failed to login", ar.logger, w)
		return
	}

	resp, claims, err := ar.authService.Login(r.Context(), body)
	if err != nil {
		if errors.Is(err, lib.ErrForbidden) {
			gecho.Forbidden(w, gecho.WithMessage("Akun dinonaktifkan"), gecho.Send())
			return
		}
		handling.HandleError(err, "Unable to complete login. Please try again", ar.logger, w)
		return
	}

	lib.SetCookie(ar.authService.CookieName(), resp.Token, claims.Exp, w)

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(resp),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	if err := ar.authService.Logout(r.Context(), claims); err != nil {
		gecho.InternalServerError(w,
			gecho.WithMessage("Failed to logout"),
			gecho.Send(),
		)
		return
	}

	lib.ClearCookie(ar.authService.CookieName(), w)

	gecho.Success(w,
		gecho.WithMessage("Logged out successfully"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetAdminFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(admin.Profile()),
		gecho.Send(),
	)
}

// HandleUpdateCredentials changes the username or password and returns a fresh token.
func (ar *AdminRoutesManager) HandleUpdateCredentials(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetAdminFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CredentialsRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to update credentials", ar.logger, w)
		return
	}

	resp, claims, err := ar.authService.UpdateCredentials(r.Context(), admin.ID, body)
	if err != nil {
		if errors.Is(err, lib.ErrInvalidCredentials) {
			gecho.Unauthorized(w, gecho.WithMessage("Password saat ini salah"), gecho.Send())
			return
		}
		handling.HandleError(err, "Failed to update credentials", ar.logger, w)
		return
	}

	lib.SetCookie(ar.authService.CookieName(), resp.Token, claims.Exp, w)

	gecho.Success(w,
		gecho.WithMessage("Kredensial berhasil diperbarui"),
		gecho.WithData(resp),
		gecho.Send(),
	)
}
