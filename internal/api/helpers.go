package api

import "strings"

// attachment builds a Content-Disposition value that downloads as filename.
// The name is left unquoted, so it must not contain separators.
func attachment(filename string) string {
	return "attachment; filename=" + strings.NewReplacer(`"`, "", ";", "", " ", "_").Replace(filename)
}

// bearerSecurity marks an operation as accepting the bearer scheme.
var bearerSecurity = []map[string][]string{{"bearer": {}}}
