package models

// ============================================================================
// REMINDER CONSTANTS
// ============================================================================

// DefaultReminderWindowMinutes is the global reminder window: a task must be
// at least this old (and still unchecked) before it becomes eligible for its
// one-time reminder. 1440 minutes = 24 hours.
const DefaultReminderWindowMinutes = 1440

// ============================================================================
// SCOPE CONSTANTS
// ============================================================================

// UnscopedID is the value of a scoping column (workflow_id, user_id, ...)
// for records that do not belong to any workflow or user.
const UnscopedID = 0

// ============================================================================
// SETTINGS KEYS
// ============================================================================

// SettingLastSavedSheet is the settings key under which the name of the most
// recently saved sheet is remembered.
const SettingLastSavedSheet = "sheet.last_saved"
