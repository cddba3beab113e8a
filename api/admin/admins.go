package admin

import (
	"net/http"

	"digistore_server/api/middleware"
	"digistore_server/handling"
	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

func (ar *AdminRoutesManager) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := ar.adminService.List(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch admins", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(admins), gecho.Send())
}

func (ar *AdminRoutesManager) GetAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid admin id", ar.logger, w)
		return
	}

	admin, err := ar.adminService.Get(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "Failed to fetch admin", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(admin), gecho.Send())
}

// currentAdmin writes a 401 and returns false when no admin is on the request.
func currentAdmin(w http.ResponseWriter, r *http.Request) (*tables.Admin, bool) {
	actor, ok := middleware.GetAdminFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
	}
	return actor, ok
}

func (ar *AdminRoutesManager) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentAdmin(w, r)
	if !ok {
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.AdminRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to create admin", ar.logger, w)
		return
	}

	admin, err := ar.adminService.Create(r.Context(), actor, body)
	if err != nil {
		handling.HandleError(err, "Failed to create admin", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Admin created"),
		gecho.WithData(admin),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid admin id", ar.logger, w)
		return
	}

	actor, ok := currentAdmin(w, r)
	if !ok {
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.AdminRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to update admin", ar.logger, w)
		return
	}

	admin, err := ar.adminService.Update(r.Context(), actor, id, body)
	if err != nil {
		handling.HandleError(err, "Failed to update admin", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Admin updated"),
		gecho.WithData(admin),
		gecho.Send(),
	)
}

// DeleteAdmin soft-deletes the account. It can be restored later.
func (ar *AdminRoutesManager) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid admin id", ar.logger, w)
		return
	}

	actor, ok := currentAdmin(w, r)
	if !ok {
		return
	}

	if err := ar.adminService.Delete(r.Context(), actor, id); err != nil {
		handling.HandleError(err, "Failed to delete admin", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Admin deleted"), gecho.Send())
}

func (ar *AdminRoutesManager) RestoreAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid admin id", ar.logger, w)
		return
	}

	actor, ok := currentAdmin(w, r)
	if !ok {
		return
	}

	admin, err := ar.adminService.Restore(r.Context(), actor, id)
	if err != nil {
		handling.HandleError(err, "Failed to restore admin", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Admin restored"),
		gecho.WithData(admin),
		gecho.Send(),
	)
}
