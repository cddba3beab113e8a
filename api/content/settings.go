package content

import (
	"net/http"

	"digistore_server/handling"

	"github.com/MonkyMars/gecho"
)

func (crm *ContentRoutesManager) FetchSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := crm.settingsService.Get(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch settings", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(settings),
		gecho.Send(),
	)
}
