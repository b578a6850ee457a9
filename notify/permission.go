package notify

// Permission mirrors the host capability's permission states.
type Permission string

const (
	// PermissionDefault means the user has neither granted nor denied;
	// prompting is allowed.
	PermissionDefault Permission = "default"

	// PermissionGranted means notifications may be shown.
	PermissionGranted Permission = "granted"

	// PermissionDenied means the user declined; prompting again is not
	// allowed.
	PermissionDenied Permission = "denied"

	// PermissionUnsupported means the host has no notification capability
	// at all.
	PermissionUnsupported Permission = "unsupported"
)
