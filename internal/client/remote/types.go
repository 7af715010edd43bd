package remote

import "time"

// Identity is the authenticated account as reported by the identity backend.
// It is mirrored read-only into the session observer's current-identity slot.
type Identity struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"displayName,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ProfileMeta is the nested presentation block of a profile document.
type ProfileMeta struct {
	DisplayName string  `json:"displayName"`
	PhotoURL    *string `json:"photoURL"`
}

// Settings holds the user-tunable toggles stored inside the profile document.
type Settings struct {
	Notifications bool   `json:"notifications"`
	Privacy       string `json:"privacy"`
}

// ProfileRecord is the application profile document, keyed 1:1 by the owning
// identity id. DateOfBirth is a FlexTime because stored documents carry it in
// three different shapes; it is canonical UTC by the time this struct exists.
type ProfileRecord struct {
	OwnerID       string    `json:"uid"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	DateOfBirth   *FlexTime `json:"dateOfBirth"`
	City          string    `json:"city"`
	CreatedAt     FlexTime  `json:"createdAt"`
	UpdatedAt     FlexTime  `json:"updatedAt"`
	EmailVerified bool      `json:"emailVerified"`
	Profile       ProfileMeta `json:"profile"`
	Settings      Settings  `json:"settings"`
	IsActive      bool      `json:"isActive"`
}

// AvatarUpload is the backend's response to an avatar upload request: a
// presigned PUT URL for the bytes and the durable GET URL to store as
// photoURL once the upload succeeds.
type AvatarUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	PhotoURL  string `json:"photoUrl"`
}
