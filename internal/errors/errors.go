package errors

import "errors"

// Ownership errors indicate no usable key material is available for an operation.
var (
	// ErrNoOwner indicates none of the candidate owners has a signing secret in the store.
	ErrNoOwner = errors.New("no candidate owner has a signing secret")

	// ErrUnknownWriter indicates the writer identity has no encryption secret in the store.
	ErrUnknownWriter = errors.New("writer has no encryption secret in the store")

	// ErrCredentialNotFound indicates the requested credential is not stored.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrCredentialExists indicates a credential with the same identity is already stored.
	ErrCredentialExists = errors.New("credential already exists")
)

// Cryptographic errors indicate failures while unlocking or opening protected data.
var (
	// ErrAuthentication indicates a wrong password or a locked blob that failed to authenticate.
	ErrAuthentication = errors.New("wrong password")

	// ErrPasswordRequired indicates a locked credential was added without a password.
	ErrPasswordRequired = errors.New("password is required for a locked credential")
)

// Format errors indicate input that is not in the expected wire format.
var (
	// ErrInvalidScheme indicates an unrecognized scheme tag on a signature or envelope.
	ErrInvalidScheme = errors.New("invalid scheme")

	// ErrMalformed indicates a wire record that does not have the expected structure.
	ErrMalformed = errors.New("malformed input")

	// ErrInvalidUTF8 indicates bytes that do not form valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 text")
)

// Keyring errors indicate issues with the on-disk credential keyring.
var (
	// ErrKeyringNotFound indicates the keyring is missing or holds no credentials.
	ErrKeyringNotFound = errors.New("no credentials in keyring")

	// ErrNoDefaultIdentity indicates no identity was given and none is configured.
	ErrNoDefaultIdentity = errors.New("no identity given and no default identity configured")
)

// Input errors indicate command arguments that cannot be used.
var (
	// ErrInvalidLabel indicates a keyring label with unsupported characters.
	ErrInvalidLabel = errors.New("invalid label: use letters, digits, hyphens and underscores")

	// ErrInvalidDateFormat indicates a date filter that is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrNoAuditLog indicates the audit log has not been written yet.
	ErrNoAuditLog = errors.New("no audit log found")
)
