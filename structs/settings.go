package structs

import "time"

type SiteMode string

const (
	SiteModeLive        SiteMode = "live"
	SiteModeMaintenance SiteMode = "maintenance"
	SiteModeComingSoon  SiteMode = "coming_soon"
)

// Setting keys as stored in the store_settings table.
const (
	SettingStoreName          = "store_name"
	SettingStoreTagline       = "store_tagline"
	SettingWhatsAppNumber     = "whatsapp_number"
	SettingWhatsAppTemplate   = "whatsapp_message_template"
	SettingSiteMode           = "site_mode"
	SettingComingSoonMessage  = "coming_soon_message"
	SettingComingSoonDate     = "coming_soon_date"
	SettingMaintenanceMessage = "maintenance_message"
	SettingMaintenanceEndDate = "maintenance_end_date"
)

const DefaultWhatsAppNumber = "6281234567890"

// StoreSettings is the typed view over the key/value settings rows.
type StoreSettings struct {
	StoreName          string   `json:"store_name"`
	StoreTagline       string   `json:"store_tagline"`
	WhatsAppNumber     string   `json:"whatsapp_number"`
	WhatsAppTemplate   string   `json:"whatsapp_message_template"`
	SiteMode           SiteMode `json:"site_mode"`
	ComingSoonMessage  string   `json:"coming_soon_message"`
	ComingSoonDate     string   `json:"coming_soon_date"`
	MaintenanceMessage string   `json:"maintenance_message"`
	MaintenanceEndDate string   `json:"maintenance_end_date"`
}

// SettingsPatch is a partial update. Nil fields are left untouched.
type SettingsPatch struct {
	StoreName          *string `json:"store_name" validate:"omitempty,max=100"`
	StoreTagline       *string `json:"store_tagline" validate:"omitempty,max=200"`
	WhatsAppNumber     *string `json:"whatsapp_number" validate:"omitempty,number,min=8,max=15"`
	WhatsAppTemplate   *string `json:"whatsapp_message_template" validate:"omitempty,max=2000"`
	SiteMode           *string `json:"site_mode" validate:"omitempty,oneof=live maintenance coming_soon"`
	ComingSoonMessage  *string `json:"coming_soon_message" validate:"omitempty,max=500"`
	ComingSoonDate     *string `json:"coming_soon_date"`
	MaintenanceMessage *string `json:"maintenance_message" validate:"omitempty,max=500"`
	MaintenanceEndDate *string `json:"maintenance_end_date"`
}

func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		StoreName:          "Digistore",
		StoreTagline:       "Akun premium & lisensi digital",
		WhatsAppNumber:     DefaultWhatsAppNumber,
		SiteMode:           SiteModeLive,
		ComingSoonMessage:  "Kami akan segera hadir!",
		MaintenanceMessage: "Website sedang dalam perbaikan. Silakan kembali lagi nanti.",
	}
}

// FromMap overlays stored rows on top of the defaults. Unknown keys are ignored.
func (s *StoreSettings) FromMap(values map[string]string) {
	for key, value := range values {
		if ptr := s.field(key); ptr != nil {
			*ptr = value
		} else if key == SettingSiteMode && SiteMode(value).Valid() {
			s.SiteMode = SiteMode(value)
		}
	}
}

func (s *StoreSettings) ToMap() map[string]string {
	return map[string]string{
		SettingStoreName:          s.StoreName,
		SettingStoreTagline:       s.StoreTagline,
		SettingWhatsAppNumber:     s.WhatsAppNumber,
		SettingWhatsAppTemplate:   s.WhatsAppTemplate,
		SettingSiteMode:           string(s.SiteMode),
		SettingComingSoonMessage:  s.ComingSoonMessage,
		SettingComingSoonDate:     s.ComingSoonDate,
		SettingMaintenanceMessage: s.MaintenanceMessage,
		SettingMaintenanceEndDate: s.MaintenanceEndDate,
	}
}

func (s *StoreSettings) field(key string) *string {
	switch key {
	case SettingStoreName:
		return &s.StoreName
	case SettingStoreTagline:
		return &s.StoreTagline
	case SettingWhatsAppNumber:
		return &s.WhatsAppNumber
	case SettingWhatsAppTemplate:
		return &s.WhatsAppTemplate
	case SettingComingSoonMessage:
		return &s.ComingSoonMessage
	case SettingComingSoonDate:
		return &s.ComingSoonDate
	case SettingMaintenanceMessage:
		return &s.MaintenanceMessage
	case SettingMaintenanceEndDate:
		return &s.MaintenanceEndDate
	}
	return nil
}

// Changes returns the keys the patch sets, with their new values.
func (p *SettingsPatch) Changes() map[string]string {
	changes := make(map[string]string)
	set := func(key string, v *string) {
		if v != nil {
			changes[key] = *v
		}
	}
	set(SettingStoreName, p.StoreName)
	set(SettingStoreTagline, p.StoreTagline)
	set(SettingWhatsAppNumber, p.WhatsAppNumber)
	set(SettingWhatsAppTemplate, p.WhatsAppTemplate)
	set(SettingSiteMode, p.SiteMode)
	set(SettingComingSoonMessage, p.ComingSoonMessage)
	set(SettingComingSoonDate, p.ComingSoonDate)
	set(SettingMaintenanceMessage, p.MaintenanceMessage)
	set(SettingMaintenanceEndDate, p.MaintenanceEndDate)
	return changes
}

// CheckDates validates the free-form date settings. Empty clears the date.
func (p *SettingsPatch) CheckDates() map[string]string {
	problems := make(map[string]string)
	for key, v := range map[string]*string{
		SettingComingSoonDate:     p.ComingSoonDate,
		SettingMaintenanceEndDate: p.MaintenanceEndDate,
	} {
		if v == nil || *v == "" {
			continue
		}
		if _, err := ParseSettingDate(*v); err != nil {
			problems[key] = "must be an RFC 3339 date"
		}
	}
	return problems
}

var settingDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func ParseSettingDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range settingDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func (m SiteMode) Valid() bool {
	return m == SiteModeLive || m == SiteModeMaintenance || m == SiteModeComingSoon
}
