package constants

// Categories for rows in the audit log table
const (
	LogCategoryData  = "Data"
	LogCategoryDebug = "Debug"
	LogCategoryError = "Error"
)
