package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Alert type icons
var (
	IconNotifySuccess = ""
	IconNotifyError   = ""
	IconNotifyWarning = ""
	IconNotifyInfo    = ""
)

// Marker icons
var (
	IconDuplicate = "\U000F018F"
	IconPinned    = "\U000F0403"
)
