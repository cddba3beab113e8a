package admin

import (
	"net/http"

	"digistore_server/handling"
	"digistore_server/lib"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
)

func (ar *AdminRoutesManager) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := ar.settingsService.Get(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch settings", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(settings), gecho.Send())
}

// UpdateSettings merges a partial settings record. Unknown keys are rejected.
func (ar *AdminRoutesManager) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SettingsPatch](r)
	if err != nil {
		handling.HandleError(err, "Failed to update settings", ar.logger, w)
		return
	}

	settings, err := ar.settingsService.Update(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "Failed to update settings", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Settings updated"),
		gecho.WithData(settings),
		gecho.Send(),
	)
}
