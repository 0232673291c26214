// Package config provides the client settings file and the persisted login
// session.
//
// # File Locations
//
//   - Linux: $XDG_CONFIG_HOME/carbon or $HOME/.config/carbon
//   - macOS: $HOME/.config/carbon
//   - Windows: %LOCALAPPDATA%\carbon
//
// config.yaml holds the server URL, the user identifier sent with every
// logged activity, the category taxonomy offered by the item form and banner
// timings. session.yaml holds the cookies issued by the tracker on login.
//
// # Precedence
//
// Defaults, then config.yaml, then CARBON_API_URL / CARBON_USER_ID, then
// command-line flags (applied by the caller).
//
// # Security
//
// Passwords are never written. The session file is created with 0600
// permissions and removed on logout.
package config
