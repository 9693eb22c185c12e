// Package config provides configuration loading, merging, and validation
// for the tyre shop server.
//
// Configuration is assembled from multiple sources; a field keeps the value
// of the first source that sets it:
//  1. Environment variables (a ./.env file is exported first, without
//     overriding variables that are already set)
//  2. Command-line flags
//  3. JSON config file
//
// Remaining zero fields are filled with defaults and the result is
// validated. The entry point is [GetStructuredConfig].
package config
