/*
schema defines the data model shared by the registry, the client factory,
the router and the provider adapters.
*/
package schema

import "encoding/json"

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Stringify returns v as indented JSON, or the marshal error text
func Stringify[T any](v T) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
