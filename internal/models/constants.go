package models

// File permissions for artifacts the tool writes.
const (
	PermissionConfigFile   = 0600
	PermissionDirectory    = 0750
	PermissionOutputFile   = 0644
	PermissionTemplateFile = 0644
)

// Bounds shared across the pipeline.
const (
	// MaxApplyErrors caps the template player's collected row errors.
	MaxApplyErrors = 50

	// MaxSampleRows caps the learner's sample rows.
	MaxSampleRows = 5

	// MaxTextMarkers caps the learner's collected document markers.
	MaxTextMarkers = 10
)
