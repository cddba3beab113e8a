package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreSettingsFromMap(t *testing.T) {
	s := DefaultStoreSettings()
	s.FromMap(map[string]string{
		SettingStoreName: "Toko Digital",
		SettingSiteMode:  "maintenance",
		"legacy_key":     "ignored",
	})

	assert.Equal(t, "Toko Digital", s.StoreName)
	assert.Equal(t, SiteModeMaintenance, s.SiteMode)
	assert.Equal(t, DefaultWhatsAppNumber, s.WhatsAppNumber)
}

func TestStoreSettingsFromMapIgnoresUnknownSiteMode(t *testing.T) {
	s := DefaultStoreSettings()
	s.FromMap(map[string]string{SettingSiteMode: "closed"})

	assert.Equal(t, SiteModeLive, s.SiteMode)
}

func TestSettingsPatchChanges(t *testing.T) {
	name := "Baru"
	empty := ""
	patch := SettingsPatch{StoreName: &name, ComingSoonDate: &empty}

	assert.Equal(t, map[string]string{
		SettingStoreName:      "Baru",
		SettingComingSoonDate: "",
	}, patch.Changes())
}

func TestSettingsPatchCheckDates(t *testing.T) {
	good := "2025-12-01T10:00"
	bad := "besok"
	empty := ""

	assert.Empty(t, (&SettingsPatch{ComingSoonDate: &good, MaintenanceEndDate: &empty}).CheckDates())

	problems := (&SettingsPatch{ComingSoonDate: &good, MaintenanceEndDate: &bad}).CheckDates()
	assert.Len(t, problems, 1)
	assert.Contains(t, problems, SettingMaintenanceEndDate)
}

func TestParseSettingDateLayouts(t *testing.T) {
	for _, v := range []string{"2025-03-07T09:30:00+07:00", "2025-03-07T09:30", "2025-03-07"} {
		parsed, err := ParseSettingDate(v)
		assert.NoError(t, err, v)
		assert.Equal(t, 2025, parsed.Year())
	}
}
