package models

// SettingsID is the fixed primary key of the single settings row.
const SettingsID = "global"

// SettingsModel is the site-wide configuration singleton. It is created
// lazily on first read and upserted on write; at most one row exists.
type SettingsModel struct {
	ID                  string `json:"id"                   gorm:"type:char(36);primaryKey"`
	SiteName            string `json:"site_name"`
	SiteDescription     string `json:"site_description"     gorm:"type:text"`
	NotificationEmail   string `json:"notification_email"`
	EnableNotifications bool   `json:"enable_notifications" gorm:"default:true"`
}

func (SettingsModel) TableName() string { return "global_settings" }
