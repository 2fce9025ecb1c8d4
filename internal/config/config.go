package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Birthday-Cards/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Birthday Cards"
	AppID             = "com.github.tartampluch.birthday-cards"
	KeyringService    = "com.github.tartampluch.birthday-cards"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 760
	MainWindowHeight    = 520
	SettingsWindowWidth = 600

	// Preference Keys
	PrefLanguage    = "language"
	PrefHorizon     = "horizon_days"
	PrefServerPort  = "server_port"
	PrefNotifyEmail = "notify_email"
	PrefSMTPHost    = "smtp_host"
	PrefSMTPPort    = "smtp_port"
	PrefSMTPAccount = "smtp_account"
	PrefRemoteURL   = "remote_url"
	PrefRemoteUser  = "remote_user"
	PrefCardPreset  = "card_preset"
	PrefLastRun     = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Table Layout (Contacts & Upcoming tabs)
// -----------------------------------------------------------------------------

const (
	// Contacts table columns
	ColIDName      = 0
	ColIDAddress   = 1
	ColIDBirthdate = 2
	ContactsCols   = 3

	ColWidthName      = 180
	ColWidthAddress   = 320
	ColWidthBirthdate = 120

	// Upcoming table columns
	UpColIDName  = 0
	UpColIDDays  = 1
	UpColIDNext  = 2
	UpcomingCols = 3

	UpColWidthName = 220
	UpColWidthDays = 120
	UpColWidthNext = 160

	TablePlaceholder = "Cell Content"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle    = "win_title"
	TKeyWinSettings = "win_settings_title"

	TKeyTabContacts = "tab_contacts"
	TKeyTabUpcoming = "tab_upcoming"
	TKeyTabCard     = "tab_card"

	TKeyMenuShow       = "menu_show"
	TKeyMenuSettings   = "menu_settings"
	TKeyTrayStatus     = "tray_status"      // Requires Count > 0
	TKeyTrayStatusZero = "tray_status_zero" // Explicit key for 0

	// Contacts tab
	TKeyBtnOpenFile  = "btn_open_file"
	TKeyBtnFetch     = "btn_fetch"
	TKeyLblRemoteURL = "lbl_remote_url"
	TKeyHelpRemote   = "help_remote_url"
	TKeyLblUser      = "lbl_user"
	TKeyLblPass      = "lbl_pass"
	TKeyLblLoaded    = "lbl_loaded"  // Requires Count
	TKeyLblSkipped   = "lbl_skipped" // Requires Count
	TKeyColName      = "col_name"
	TKeyColAddress   = "col_address"
	TKeyColBirthdate = "col_birthdate"

	// Upcoming tab
	TKeyLblHorizon       = "lbl_horizon"
	TKeyHelpHorizon      = "help_horizon"
	TKeyLblDaysSuffix    = "lbl_days_suffix"
	TKeyBtnRefresh       = "btn_refresh"
	TKeyBtnSendReminders = "btn_send_reminders"
	TKeyColDays          = "col_days_until"
	TKeyColNext          = "col_next_occurrence"
	TKeyLblNoUpcoming    = "lbl_no_upcoming" // Requires Days
	TKeyNotifSent        = "notif_sent"      // Requires Name
	TKeyNotifSendFail    = "notif_send_fail" // Requires Name
	TKeyEvtSummary       = "event_summary"   // Requires Name

	// Card tab
	TKeyLblRecipient = "lbl_recipient"
	TKeyLblPreset    = "lbl_preset"
	TKeyLblMessage   = "lbl_message"
	TKeyMsgCustom    = "msg_custom"
	TKeyBtnSaveCard  = "btn_save_card"
	TKeyLblPostage   = "lbl_postage"

	// Settings window
	TKeyLblGeneral     = "lbl_general"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblNotifyEmail = "lbl_notify_email"
	TKeyHelpNotify     = "help_notify_email"
	TKeyLblSMTP        = "lbl_smtp"
	TKeyLblSMTPHost    = "lbl_smtp_host"
	TKeyLblSMTPPort    = "lbl_smtp_port"
	TKeyLblSMTPAccount = "lbl_smtp_account"
	TKeyLblSMTPPass    = "lbl_smtp_pass"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyLblFooter      = "lbl_footer"

	// Validation Errors (UI)
	TKeyErrPortReq      = "err_port_required"
	TKeyErrPortNum      = "err_port_number"
	TKeyErrPortRange    = "err_port_range"
	TKeyErrHorizonRange = "err_horizon_range"
	TKeyErrNoContacts   = "err_no_contacts"
	TKeyErrNoRecipient  = "err_no_recipient"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultHorizonDays = 7
	MinHorizonDays     = 1
	MaxHorizonDays     = 30
	DefaultPort        = "18081"
	DefaultLanguage    = "en"
	DefaultSMTPHost    = "smtp.gmail.com"
	DefaultSMTPPort    = 587
	UIDSalt            = "birthday-cards-v1-" // Salt for deterministic UID generation
)

// DefaultCardMessages are the suggested card bodies offered next to "Custom".
// Card text is user content, not UI chrome, so it is not localized.
var DefaultCardMessages = []string{
	"Wishing you a wonderful birthday filled with happiness and joy!",
	"Hope your special day brings you lots of joy and happiness!",
	"Another year older, another year wiser. Happy Birthday!",
	"May all your birthday wishes come true!",
}

// -----------------------------------------------------------------------------
// Contact File Format
// -----------------------------------------------------------------------------

const (
	FieldSeparator   = ","
	MinContactFields = 3

	// DateLayoutInput is the single accepted birthdate layout (MM/DD/YYYY)
	// after separator normalization.
	DateLayoutInput    = "01/02/2006"
	DateFormatDisplay  = "01/02/2006"
	DateSeparatorDash  = "-"
	DateSeparatorDot   = "."
	DateSeparatorSlash = "/"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"
	VCardADR  = "ADR"

	// Date layouts accepted for vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"

	// File Extensions
	ExtTXT   = ".txt"
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtPNG   = ".png"
)

// -----------------------------------------------------------------------------
// Card Rendering
// -----------------------------------------------------------------------------

const (
	CardWidth  = 400
	CardHeight = 300

	CardTitleY      = 50
	CardBodyStartY  = 120
	CardLineSpacing = 25
	CardMarginX     = 20

	CardTitleFontSize = 24
	CardBodyFontSize  = 16
	CardFontDPI       = 72

	CardTitleFormat = "Happy Birthday, %s!"

	PresetClassic = "Classic"
	PresetModern  = "Modern"
	PresetFun     = "Fun"
	PresetElegant = "Elegant"

	CardFileNameFormat = "birthday_card_%s.png"
	CardFileTimeLayout = "20060102_150405"
)

// CardPresets lists the selectable preset names in display order.
var CardPresets = []string{PresetClassic, PresetModern, PresetFun, PresetElegant}

// -----------------------------------------------------------------------------
// Postage Link
// -----------------------------------------------------------------------------

const (
	PostageBaseURL    = "https://cns.usps.com/mailpieces"
	PostageQueryParam = "destination"
	EscapeSpace       = "%20"
	EscapeComma       = "%2C"
	CharSpace         = " "
	CharComma         = ","
)

// -----------------------------------------------------------------------------
// Email (SMTP)
// -----------------------------------------------------------------------------

const (
	SMTPSubjectFormat = "Birthday Reminder: %s"

	MailHeaderFrom    = "From"
	MailHeaderTo      = "To"
	MailHeaderSubject = "Subject"
	MailCRLF          = "\r\n"

	// SMTPBodyFormat expects: name, days, birthdate, address.
	SMTPBodyFormat = "Hi there!" + MailCRLF + MailCRLF +
		"This is a reminder that %s's birthday is coming up in %d day(s)!" + MailCRLF + MailCRLF +
		"Birthday: %s" + MailCRLF +
		"Address: %s" + MailCRLF + MailCRLF +
		"Would you like to send them a birthday card?" + MailCRLF + MailCRLF +
		"Best regards," + MailCRLF +
		AppName + MailCRLF
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Birthday Cards//Engine//EN"
	ICalCalName = "Upcoming Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "birthdaycards"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB is generous for a text contact list
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteFeed           = "/"
	RouteCard           = "/card.png"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeImagePNG        = "image/png"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrContactsRead     = "failed to read contacts data"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrPNGEncode        = "failed to encode card image"
	ErrFontFace         = "failed to build font face"
	ErrRemoteURLEmpty   = "configuration error: remote URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrSMTPHostEmpty    = "mail error: SMTP host is not configured"
	ErrSMTPFromEmpty    = "mail error: sender address is not configured"
	ErrRecipientEmpty   = "mail error: recipient address is empty"
	ErrSMTPSend         = "failed to send reminder email"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrHorizonNegative  = "horizon must not be negative"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrLocNotInit       = "localizer not initialized"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgNoCard       = "No card has been generated yet."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary     = "Birthday: %s"
	FallbackTrayError   = "Birthday Cards: Error"
	FallbackTrayDefault = "Birthday Cards (%d upcoming)"
	FallbackTrayLabel   = "Birthday Cards"
	FallbackName        = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	TitleLoadError    = "Load Error"
	TitleSendError    = "Send Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgAppStarting    = "Starting application"
	MsgContactsLoaded = "Contacts loaded"
	MsgFilterDone     = "Upcoming birthdays computed"
	MsgCardRendered   = "Card rendered"
	MsgReminderSent   = "Reminder sent"
	MsgReminderFail   = "Reminder failed"
	MsgFeedUpdated    = "Feed regenerated"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Server cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgLineSkipped   = "Skipped malformed contact lines"
	MsgDateSkipped   = "Skipped unparseable birthdates"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyCount     = "count"
	LogKeySkipped   = "skipped"
	LogKeyName      = "name"
	LogKeyDays      = "days_until"
	LogKeyHorizon   = "horizon"
	LogKeyRecipient = "recipient"
	LogKeyHost      = "host"
	LogKeyPreset    = "preset"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompCard    = "card"
	CompMailer  = "mailer"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompMain    = "main"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2

	// Limits
	MinPort = 1
	MaxPort = 65535
)
