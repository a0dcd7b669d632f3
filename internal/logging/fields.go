package logging

// Shared attribute keys. Using these constants keeps log output greppable
// across packages.
const (
	FieldComponent  = "component"
	FieldAtomicID   = "atomic_id"
	FieldDatEntryID = "dat_entry_id"
	FieldPlatformID = "platform_id"
	FieldRunID      = "run_id"
	FieldTitle      = "title"
	FieldConfidence = "confidence"
	FieldMatchType  = "match_type"
	FieldCount      = "count"
)
